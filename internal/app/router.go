package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:  cfg.AllowedOrigins,
		MediaDir:        cfg.MediaDir,
		AuthMiddleware:  middleware.Auth,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		ProductHandler:  handlers.Product,
		CartHandler:     handlers.Cart,
		OrderHandler:    handlers.Order,
		WishlistHandler: handlers.Wishlist,
		AdminHandler:    handlers.Admin,
	})
}
