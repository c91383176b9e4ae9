package routes

import (
	paymentsapi "payments-service/internal/api/payments"
	stripewebhooks "payments-service/internal/api/stripewebhook"
	"payments-service/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, payments *paymentsapi.Handler, webhook *stripewebhooks.Handler) {
	r.POST("/webhook", webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authenticated: tokens come from the identity service
	auth := r.Group("/")
	auth.Use(middleware.SanitizeInputMiddleware(), middleware.AuthMiddleware())
	auth.POST("/payments", payments.CreatePayment)
	auth.GET("/payments", payments.ListPayments)
	auth.GET("/payments/:id", payments.GetPayment)
	auth.PUT("/payments/:id/status", payments.UpdatePaymentStatus)
	auth.POST("/payments/:id/refund", payments.RefundPayment)

	// Hard delete discards financial history; admins only.
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.DELETE("/payments/:id", payments.DeletePayment)
}
