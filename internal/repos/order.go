package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Order, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, status string) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	SumTotalPrice(ctx context.Context, tx *gorm.DB) (float64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(orders) == 0 {
		return []*types.Order{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (or *orderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", orderIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (or *orderRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalPrice excludes cancelled orders; revenue counts everything placed
// and not cancelled.
func (or *orderRepo) SumTotalPrice(ctx context.Context, tx *gorm.DB) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var sum *float64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("status <> ?", types.OrderStatusCancelled).
		Select("SUM(total_price)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
