package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/config"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/handler"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, invH *handler.InvoiceHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Invoice routes
	invoices := v1.Group("/invoices")
	invoices.POST("/validate", invH.Validate)
	invoices.POST("/export", invH.Export)

	return r
}
