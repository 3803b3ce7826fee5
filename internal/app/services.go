package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

type Services struct {
	Avatar   services.AvatarService
	Auth     services.AuthService
	User     services.UserService
	Product  services.ProductService
	Cart     services.CartService
	Order    services.OrderService
	Wishlist services.WishlistService
	Admin    services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, clients Clients) Services {
	log.Info("Wiring services...")

	avatarService, err := services.NewAvatarService(log, clients.MediaStore)
	if err != nil {
		// Registration works without avatars; keep booting.
		log.Warn("Avatar service unavailable", "error", err)
		avatarService = nil
	}

	authService := services.NewAuthService(db, log, r.User, r.UserToken, avatarService, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cartService := services.NewCartService(log, r.Product, clients.CartStore)

	return Services{
		Avatar:   avatarService,
		Auth:     authService,
		User:     services.NewUserService(log, r.User),
		Product:  services.NewProductService(db, log, r.Product, r.Category),
		Cart:     cartService,
		Order:    services.NewOrderService(db, log, r.Order, r.Product, cartService),
		Wishlist: services.NewWishlistService(log, r.Wishlist, r.Product),
		Admin:    services.NewAdminService(db, log, r.Product, r.Category, r.Order, r.User),
	}
}
