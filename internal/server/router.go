package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins  []string
	MediaDir        string
	AuthMiddleware  *middleware.AuthMiddleware
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	WishlistHandler *handlers.WishlistHandler
	AdminHandler    *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("storefront"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.GET("/products", cfg.ProductHandler.ListProducts)
	router.GET("/products/:id", cfg.ProductHandler.GetProduct)
	router.GET("/categories", cfg.ProductHandler.ListCategories)
	router.GET("/filters", cfg.ProductHandler.GetFilterMetadata)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Cart
	protected.GET("/cart", cfg.CartHandler.GetCart)
	protected.POST("/cart/items", cfg.CartHandler.AddItem)
	protected.PUT("/cart/items/:productId", cfg.CartHandler.UpdateQuantity)
	protected.DELETE("/cart/items/:productId", cfg.CartHandler.RemoveItem)
	protected.DELETE("/cart", cfg.CartHandler.ClearCart)
	// Orders
	protected.POST("/orders", cfg.OrderHandler.PlaceOrder)
	protected.GET("/orders", cfg.OrderHandler.ListOrders)
	protected.GET("/orders/:id", cfg.OrderHandler.GetOrder)
	// Wishlist
	protected.GET("/wishlist", cfg.WishlistHandler.List)
	protected.POST("/wishlist", cfg.WishlistHandler.Add)
	protected.DELETE("/wishlist/:productId", cfg.WishlistHandler.Remove)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.POST("/products", cfg.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", cfg.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", cfg.AdminHandler.DeleteProduct)
	admin.GET("/orders", cfg.AdminHandler.ListOrders)
	admin.PUT("/orders/:id/status", cfg.AdminHandler.UpdateOrderStatus)
	admin.GET("/users", cfg.AdminHandler.ListUsers)
	admin.GET("/stats", cfg.AdminHandler.GetDashboardStats)

	return router
}
