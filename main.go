package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"splitledger-backend/config"
	"splitledger-backend/database"
	"splitledger-backend/handlers"
	"splitledger-backend/middleware"
	"splitledger-backend/services"
	"splitledger-backend/storage"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	db := database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	cache := database.ConnectRedis()

	// Collaborators
	edges := storage.NewLedgerStore(db)
	notifier := services.NewNotifier(context.Background())

	// Weekly summary worker
	summary := services.NewSummaryWorker(db, edges, notifier, config.AppConfig.SummaryInterval)
	summary.Start()
	defer summary.Stop()

	h := handlers.New(db, edges, cache, notifier)

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	api := r.Group("/api")
	{
		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users", h.GetUsers)
		api.GET("/users/:id", h.GetUser)
		api.PUT("/users/:id/fcm-token", h.UpdateFCMToken)

		// Expenses
		api.POST("/expenses", h.AddExpense)
		api.GET("/expenses/:id", h.GetExpense)
		api.GET("/users/:id/expenses", h.GetUserExpenses)

		// Balances
		api.GET("/users/:id/balances", h.GetUserBalances)

		// Settlements
		api.POST("/settlements", h.CreateSettlement)
		api.GET("/settlements", h.GetSettlements)
		api.GET("/settlements/plan", h.GetSettlementPlan)
	}

	// Start server
	port := config.AppConfig.Port
	addr := "0.0.0.0:" + port
	log.Printf("🚀 %s server starting on %s", config.AppConfig.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
