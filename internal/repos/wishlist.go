package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type WishlistRepo interface {
	Add(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) error
	Remove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID) error
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WishlistItem, error)
}

type wishlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWishlistRepo(db *gorm.DB, baseLog *logger.Logger) WishlistRepo {
	repoLog := baseLog.With("repo", "WishlistRepo")
	return &wishlistRepo{db: db, log: repoLog}
}

// Add is idempotent: re-adding an existing (user, product) pair is a no-op.
func (wr *wishlistRepo) Add(ctx context.Context, tx *gorm.DB, item *types.WishlistItem) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

func (wr *wishlistRepo) Remove(ctx context.Context, tx *gorm.DB, userID, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&types.WishlistItem{}).Error
}

func (wr *wishlistRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WishlistItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WishlistItem
	if err := transaction.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
