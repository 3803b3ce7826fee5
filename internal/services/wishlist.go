package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/logger"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

type WishlistService interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*types.WishlistItem, error)
}

type wishlistService struct {
	log          *logger.Logger
	wishlistRepo repos.WishlistRepo
	productRepo  repos.ProductRepo
}

func NewWishlistService(log *logger.Logger, wishlistRepo repos.WishlistRepo, productRepo repos.ProductRepo) WishlistService {
	serviceLog := log.With("service", "WishlistService")
	return &wishlistService{
		log:          serviceLog,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (ws *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	found, err := ws.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}
	if len(found) == 0 {
		return fmt.Errorf("%w: product %s", errs.ErrNotFound, productID)
	}
	item := &types.WishlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
	}
	return ws.wishlistRepo.Add(ctx, nil, item)
}

func (ws *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return ws.wishlistRepo.Remove(ctx, nil, userID, productID)
}

func (ws *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]*types.WishlistItem, error) {
	return ws.wishlistRepo.ListByUserID(ctx, nil, userID)
}
