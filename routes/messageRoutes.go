package routes

import (
	"github.com/PilotScript/freelancer-platform/messages"
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/msghub"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddMessageRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, hub *msghub.Hub) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.POST("/api/v1/messages", authed(messages.SendMessage(hub)))
	router.GET("/api/v1/messages/:userId", authed(messages.GetMessages))
	router.PUT("/api/v1/messages/:id/read", authed(messages.MarkAsRead))

	router.GET("/api/v1/conversations", authed(messages.GetConversations))
	router.GET("/api/v1/conversations/unread-count", authed(messages.GetUnreadCount))

	// Live delivery; token is validated during the upgrade.
	router.GET("/ws/conversations/:id", msghub.WebSocketHandler(hub))
}
