package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GiaSoPas/RestaurantManagementSystem/config"
	"github.com/GiaSoPas/RestaurantManagementSystem/controllers"
	"github.com/GiaSoPas/RestaurantManagementSystem/middleware"
	"github.com/GiaSoPas/RestaurantManagementSystem/models"
	"github.com/GiaSoPas/RestaurantManagementSystem/services"
)

func main() {
	// Basic logging
	log.Println("Starting Restaurant Management API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Status{},
		&models.TableStatus{},
		&models.Table{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed reference data on an empty database
	if err := config.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize image storage when a bucket is configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, menu item photos are disabled")
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the router with all API routes. Authentication is only
// attached when Auth0 is configured; without it the acting user falls back
// to the configured dev account.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")

	// Health check and database status endpoints stay public
	v1.GET("/health", healthCheck)
	v1.GET("/database/status", databaseStatus)

	api := v1.Group("")
	if cfg != nil && cfg.Auth0Domain != "" {
		api.Use(middleware.EnsureValidToken(cfg))
	}

	{
		api.GET("/users/me", controllers.GetMyProfile)

		api.POST("/orders", controllers.CreateOrder)
		api.GET("/orders/active", controllers.GetActiveOrders)
		api.GET("/orders/:id", controllers.GetOrder)
		api.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
		api.PUT("/orders/:id/items/:itemId/status", controllers.UpdateOrderItemStatus)
		api.DELETE("/orders/:id", controllers.CancelOrder)
		api.POST("/orders/:id/payments", controllers.RecordPayment)

		api.GET("/tables/layout", controllers.GetTableLayout)
		api.GET("/tables/statuses", controllers.GetTableStatuses)
		api.GET("/tables/:id", controllers.GetTable)
		api.GET("/tables/:id/history", controllers.GetTableHistory)
		api.PUT("/tables/:id/status", controllers.UpdateTableStatus)
		api.POST("/tables/:id/orders/:orderId/move", controllers.MoveOrder)

		api.GET("/menu/categories", controllers.GetCategories)
		api.POST("/menu/categories", controllers.CreateCategory)
		api.PUT("/menu/categories/:id", controllers.UpdateCategory)
		api.DELETE("/menu/categories/:id", controllers.DeleteCategory)
		api.GET("/menu/items", controllers.GetMenuItems)
		api.GET("/menu/items/:id", controllers.GetMenuItem)
		api.POST("/menu/items", controllers.CreateMenuItem)
		api.PUT("/menu/items/:id", controllers.UpdateMenuItem)
		api.PUT("/menu/items/:id/image", controllers.UpdateMenuItemImage)
		api.DELETE("/menu/items/:id", controllers.DeleteMenuItem)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant Management API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
