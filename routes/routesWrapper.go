package routes

import (
	"github.com/PilotScript/freelancer-platform/msghub"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, hub *msghub.Hub) {
	AddAuthRoutes(router, rateLimiter)
	AddUserRoutes(router, rateLimiter)
	AddJobRoutes(router, rateLimiter)
	AddProposalRoutes(router, rateLimiter)
	AddPaymentRoutes(router, rateLimiter)
	AddMessageRoutes(router, rateLimiter, hub)
	AddReviewRoutes(router, rateLimiter)
	AddNotificationRoutes(router, rateLimiter)
}
