package routes

import (
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/ratelim"
	"github.com/PilotScript/freelancer-platform/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddReviewRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.POST("/api/v1/reviews", authed(reviews.CreateReview))
	router.POST("/api/v1/jobs/:id/reviews", authed(reviews.CreateReview))
	router.DELETE("/api/v1/reviews/:id", authed(reviews.DeleteReview))
	router.GET("/api/v1/users/:id/reviews",
		middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)(reviews.GetUserReviews))
}
