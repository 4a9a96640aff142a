package routes

import (
	"github.com/PilotScript/freelancer-platform/auth"
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register",
		middleware.Chain(rateLimiter.Limit)(auth.Register))
	router.POST("/api/v1/auth/login",
		middleware.Chain(rateLimiter.Limit)(auth.Login))
	router.POST("/api/v1/auth/refresh",
		middleware.Chain(rateLimiter.Limit)(auth.RefreshToken))
	router.POST("/api/v1/auth/logout",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.Logout))
	router.GET("/api/v1/auth/me",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.Me))
}
