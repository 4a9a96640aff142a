package routes

import (
	"github.com/PilotScript/freelancer-platform/jobs"
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/proposals"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddJobRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	clientOnly := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleClient, models.RoleAdmin),
	)
	freelancerOnly := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleFreelancer, models.RoleAdmin),
	)

	// Browsing is open to logged-out visitors.
	public := middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)
	router.GET("/api/v1/jobs", public(jobs.GetJobs))
	router.GET("/api/v1/jobs/:id", public(jobs.GetJob))

	router.POST("/api/v1/jobs", clientOnly(jobs.CreateJob))
	router.PUT("/api/v1/jobs/:id", authed(jobs.UpdateJob))
	router.DELETE("/api/v1/jobs/:id", authed(jobs.DeleteJob))
	router.GET("/api/v1/my/jobs", authed(jobs.GetMyJobs))

	// Proposals hang off their job for creation and owner listing.
	router.POST("/api/v1/jobs/:id/proposals", freelancerOnly(proposals.CreateProposal))
	router.GET("/api/v1/jobs/:id/proposals", authed(proposals.GetJobProposals))
}
