package routes

import (
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/notifications"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddNotificationRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/v1/notifications", authed(notifications.ListNotifications))
	router.PUT("/api/v1/notifications/:id/read", authed(notifications.MarkRead))
	router.POST("/api/v1/notifications/read-all", authed(notifications.MarkAllRead))
}
