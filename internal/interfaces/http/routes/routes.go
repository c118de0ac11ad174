// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/handlers"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupMenuRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
	setupOrderRoutes(rg, db, redisClient, cfg)
	setupFavoriteRoutes(rg, db, cfg)
	setupAdminRoutes(rg, db, redisClient, cfg)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}
}

// setupMenuRoutes sets up public menu routes
func setupMenuRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	menuHandler := handlers.NewMenuHandler(db, cfg)

	menu := rg.Group("/menu")
	{
		menu.GET("", menuHandler.ListItems)
		menu.GET("/categories", menuHandler.GetCategories)
		menu.GET("/options", menuHandler.GetOptions)
		menu.GET("/:id", menuHandler.GetItem)
	}
}

// setupCartRoutes sets up cart routes. Auth is optional: authenticated
// requests act on the user cart, anonymous ones on the device cart.
func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.PUT("/items/:id/size", cartHandler.SetSize)
		cart.PUT("/items/:id/toppings", cartHandler.ToggleTopping)

		// Merge requires a logged-in user
		merge := cart.Group("")
		merge.Use(middleware.AuthMiddleware(cfg))
		{
			merge.POST("/merge", cartHandler.MergeCart)
		}
	}
}

// setupOrderRoutes sets up order routes
func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		// Guests may submit orders from a device cart
		orders.POST("", orderHandler.Submit)

		// Order history is tied to an account
		protected := orders.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("", orderHandler.ListMine)
			protected.GET("/:id", orderHandler.GetMine)
			protected.GET("/:id/receipt", orderHandler.Receipt)
			protected.PUT("/:id/cancel", orderHandler.Cancel)
		}
	}
}

// setupFavoriteRoutes sets up favorite routes
func setupFavoriteRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	favoriteHandler := handlers.NewFavoriteHandler(db)

	favorites := rg.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(cfg))
	{
		favorites.GET("", favoriteHandler.List)
		favorites.POST("/:id", favoriteHandler.Add)
		favorites.DELETE("/:id", favoriteHandler.Remove)
	}
}

// setupAdminRoutes sets up the admin surface
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	menuHandler := handlers.NewMenuHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Menu management
		admin.POST("/menu", menuHandler.CreateItem)
		admin.PUT("/menu/:id", menuHandler.UpdateItem)
		admin.DELETE("/menu/:id", menuHandler.DeleteItem)

		// Order management
		admin.GET("/orders", orderHandler.List)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		// User management
		admin.GET("/users", authHandler.ListUsers)
		admin.PUT("/users/:id/active", authHandler.SetUserActive)

		// Image uploads
		admin.POST("/uploads", uploadHandler.UploadImage)
		admin.GET("/uploads", uploadHandler.ListImages)
		admin.DELETE("/uploads/:id", uploadHandler.DeleteImage)
	}
}
