package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/config"
	"github.com/jcloud/bookstore-backend/internal/app/controller"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	userController     *controller.UserController
	bookController     *controller.BookController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	reviewController   *controller.ReviewController
	favoriteController *controller.FavoriteController
	statsController    *controller.StatsController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	bookController *controller.BookController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	reviewController *controller.ReviewController,
	favoriteController *controller.FavoriteController,
	statsController *controller.StatsController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		userController:     userController,
		bookController:     bookController,
		cartController:     cartController,
		orderController:    orderController,
		reviewController:   reviewController,
		favoriteController: favoriteController,
		statsController:    statsController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(&r.config.RateLimit))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": r.config.Server.Version,
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		users := v1.Group("/users")
		{
			users.POST("/signup", r.authController.Signup)
			users.GET("/me", r.authMiddleware.Authenticate(), r.userController.GetMe)
			users.PATCH("/me", r.authMiddleware.Authenticate(), r.userController.UpdateMe)
			users.DELETE("/me", r.authMiddleware.Authenticate(), r.userController.DeleteMe)

			users.GET("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.userController.ListUsers,
			)
			users.PATCH("/:id/status",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.userController.SetUserStatus,
			)
		}

		books := v1.Group("/books")
		{
			books.GET("", r.bookController.ListBooks)
			books.GET("/:id", r.bookController.GetBook)
			books.GET("/:id/reviews", r.reviewController.ListBookReviews)
			books.GET("/:id/favorites/count", r.favoriteController.CountBookFavorites)

			books.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.bookController.CreateBook,
			)
			books.PATCH("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.bookController.UpdateBook,
			)
			books.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireAdmin(),
				r.bookController.DeleteBook,
			)

			books.POST("/:id/reviews", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)
			books.POST("/:id/favorites", r.authMiddleware.Authenticate(), r.favoriteController.ToggleFavorite)
		}

		reviews := v1.Group("/reviews", r.authMiddleware.Authenticate())
		{
			reviews.PATCH("/:id", r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.reviewController.DeleteReview)
		}

		cart := v1.Group("/cart", r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PATCH("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders", r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.ListOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
			orders.PATCH("/:id/status",
				r.authMiddleware.RequireAdmin(),
				r.orderController.UpdateOrderStatus,
			)
		}

		favorites := v1.Group("/favorites", r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.ListFavorites)
		}

		stats := v1.Group("/stats",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireAdmin(),
		)
		{
			stats.GET("/daily", r.statsController.DailySales)
			stats.GET("/top-sellers", r.statsController.TopSellers)
		}

		uploads := v1.Group("/uploads",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireAdmin(),
		)
		{
			uploads.POST("/book-cover", r.uploadController.PresignBookCover)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
