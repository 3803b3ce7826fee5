package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	Update(ctx context.Context, tx *gorm.DB, product *types.Product) error
	Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, by int) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) Update(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(product).Error
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&types.Product{}).Error
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDForUpdate takes a row lock so stock checks inside a transaction do
// not race concurrent checkouts.
func (pr *productRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Product
	if err := transaction.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, by int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ? AND stock >= ?", productID, by).
		UpdateColumn("stock", gorm.Expr("stock - ?", by)).Error
}

func (pr *productRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
