package app

import (
	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Product  *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Order    *handlers.OrderHandler
	Wishlist *handlers.WishlistHandler
	Admin    *handlers.AdminHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		User:     handlers.NewUserHandler(services.User),
		Product:  handlers.NewProductHandler(log, services.Product),
		Cart:     handlers.NewCartHandler(log, services.Cart),
		Order:    handlers.NewOrderHandler(log, services.Order),
		Wishlist: handlers.NewWishlistHandler(services.Wishlist),
		Admin:    handlers.NewAdminHandler(log, services.Admin),
	}
}
