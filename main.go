package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tskauto/dealership-api/config"
	"github.com/tskauto/dealership-api/handlers"
	"github.com/tskauto/dealership-api/ledger"
	"github.com/tskauto/dealership-api/logger"
	"github.com/tskauto/dealership-api/middleware"
	"github.com/tskauto/dealership-api/pdfgen"
	"github.com/tskauto/dealership-api/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Invoice history lives in one named blob, loaded once at startup.
	store := storage.NewGormStore(db, cfg.HistoryKey)
	invoiceLedger := ledger.New(store, logger.WithComponent("ledger"))
	renderer := pdfgen.NewInvoiceRenderer(cfg.Company, cfg.Bank)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "dealership-api",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(db, cfg)
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		invoiceHandler := handlers.NewInvoiceHandler(invoiceLedger, renderer, cfg)
		protected := api.Group("")
		protected.Use(middleware.JwtAuthMiddleware(cfg))
		{
			protected.POST("/invoices", invoiceHandler.Create)
			protected.GET("/invoices", invoiceHandler.List)
			protected.GET("/invoices/export", invoiceHandler.ExportCSV)
			protected.GET("/invoices/:id/pdf", invoiceHandler.DownloadPDF)
			protected.GET("/invoices/:id/email", invoiceHandler.Email)
			protected.DELETE("/invoices/:id", invoiceHandler.Delete)

			// Wiping the whole history is restricted to admins.
			protected.DELETE("/invoices", middleware.RequireRole("admin"), invoiceHandler.Clear)
		}
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Starting dealership API server")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
