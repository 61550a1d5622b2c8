package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcloud/bookstore-backend/config"
	"github.com/jcloud/bookstore-backend/internal/app/controller"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/jcloud/bookstore-backend/internal/middleware"
	"github.com/jcloud/bookstore-backend/internal/router"
	"github.com/jcloud/bookstore-backend/internal/scheduler"
	"github.com/jcloud/bookstore-backend/internal/storage"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"github.com/jcloud/bookstore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting JCloud Bookstore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the initial admin account when the table is empty
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		if err := db.EnsureAdminUser(adminEmail, adminPassword); err != nil {
			logger.Warn("Failed to seed admin user", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Initialize redis for rate limiting
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled until it recovers", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	bookRepo := repository.NewBookRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	statsRepo := repository.NewStatsRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo)
	cartService := service.NewCartService(cartRepo, bookRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, db.GetDB())
	reviewService := service.NewReviewService(reviewRepo, bookRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, bookRepo)
	statsService := service.NewStatsService(statsRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	bookController := controller.NewBookController(bookService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	reviewController := controller.NewReviewController(reviewService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	statsController := controller.NewStatsController(statsService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, userRepo)

	// Start sales report scheduler
	salesScheduler := scheduler.NewSalesReportScheduler(statsService)
	if err := salesScheduler.Start(); err != nil {
		logger.Warn("Failed to start sales report scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer salesScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		bookController,
		cartController,
		orderController,
		reviewController,
		favoriteController,
		statsController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
