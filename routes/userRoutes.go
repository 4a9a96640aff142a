package routes

import (
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/profile"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddUserRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/v1/users/:id", authed(profile.GetUser))
	router.PUT("/api/v1/users/:id", authed(profile.UpdateUser))
	router.DELETE("/api/v1/users/:id", authed(profile.DeleteUser))
	router.POST("/api/v1/users/:id/avatar", authed(profile.UploadAvatar))

	router.GET("/api/v1/users",
		middleware.Chain(
			rateLimiter.Limit,
			middleware.Authenticate,
			middleware.RequireRoles(models.RoleAdmin),
		)(profile.ListUsers))
}
