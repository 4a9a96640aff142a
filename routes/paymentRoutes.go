package routes

import (
	"github.com/PilotScript/freelancer-platform/middleware"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/payments"
	"github.com/PilotScript/freelancer-platform/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddPaymentRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	authed := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	clientMutation := middleware.Chain(
		rateLimiter.Limit,
		middleware.Authenticate,
		middleware.RequireRoles(models.RoleClient, models.RoleAdmin),
		middleware.Idempotent,
	)

	router.POST("/api/v1/payments/create-intent", clientMutation(payments.CreateIntent))
	router.POST("/api/v1/payments/confirm", clientMutation(payments.ConfirmPayment))
	router.PUT("/api/v1/payments/:id/release", clientMutation(payments.ReleasePayment))
	router.PUT("/api/v1/payments/:id/refund", clientMutation(payments.RequestRefund))

	router.GET("/api/v1/payments", authed(payments.GetPayments))
	router.GET("/api/v1/payments/:id", authed(payments.GetPayment))
	router.GET("/api/v1/payments/:id/receipt", authed(payments.DownloadReceipt))

	// Gateway callback; authenticated by signature, not by JWT.
	router.POST("/api/v1/webhooks/stripe", rateLimiter.Limit(payments.HandleWebhook))
}
