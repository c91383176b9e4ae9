package main

import (
	"log"
	"os"
	"time"

	"payments-service/config"
	"payments-service/database"
	paymentsapi "payments-service/internal/api/payments"
	stripewebhooks "payments-service/internal/api/stripewebhook"
	routes "payments-service/internal/app/http"
	"payments-service/internal/infra/audit"
	"payments-service/internal/infra/catalog"
	"payments-service/internal/infra/observability"
	"payments-service/internal/infra/postgres"
	stripegw "payments-service/internal/infra/stripe"
	"payments-service/internal/payments"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	auditLogger := audit.NewLogger(logger, config.AUDIT_BUFFER, metrics.AuditDropped)
	defer auditLogger.Close()

	store := postgres.NewPaymentStore(database.DB)
	gateway := stripegw.NewGateway(config.STRIPE_SECRET_KEY, config.GATEWAY_TIMEOUT)
	catalogClient := catalog.NewClient(config.CATALOG_URL, config.GATEWAY_TIMEOUT)

	svc := payments.NewService(store, gateway, catalogClient, auditLogger, logger, metrics, config.CURRENCY)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, paymentsapi.NewHandler(svc), stripewebhooks.NewHandler(svc))

	r.Run(":" + config.PORT)
}
