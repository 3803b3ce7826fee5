package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Product   repos.ProductRepo
	Category  repos.CategoryRepo
	Order     repos.OrderRepo
	Wishlist  repos.WishlistRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Product:   repos.NewProductRepo(db, log),
		Category:  repos.NewCategoryRepo(db, log),
		Order:     repos.NewOrderRepo(db, log),
		Wishlist:  repos.NewWishlistRepo(db, log),
	}
}
