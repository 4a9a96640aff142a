package routes

import (
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/proposals"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddProposalRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/v1/proposals", authed(proposals.GetProposals))
	router.GET("/api/v1/proposals/:id", authed(proposals.GetProposal))
	router.PUT("/api/v1/proposals/:id", authed(proposals.UpdateProposal))
	router.PUT("/api/v1/proposals/:id/status", authed(proposals.ChangeProposalStatus))
	router.PUT("/api/v1/proposals/:id/withdraw", authed(proposals.WithdrawProposal))
	router.DELETE("/api/v1/proposals/:id", authed(proposals.DeleteProposal))
}
