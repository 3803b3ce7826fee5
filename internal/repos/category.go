package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type CategoryRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, categories []*types.Category) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	Exists(ctx context.Context, tx *gorm.DB, categoryID string) (bool, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) Upsert(ctx context.Context, tx *gorm.DB, categories []*types.Category) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(categories) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "updated_at"}),
		}).
		Create(&categories).Error
}

func (cr *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) Exists(ctx context.Context, tx *gorm.DB, categoryID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Where("id = ?", categoryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
