package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/config"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/extractor"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/handler"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/router"
	"github.com/Patel-Punit/InvoiceProcessingSystemPro/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize extraction client and validation engine
	extClient := extractor.NewClient(&cfg.Extractor)
	engine := validator.NewEngine()

	// Initialize handlers
	invH := handler.NewInvoiceHandler(extClient, engine, &cfg.Upload)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, invH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
