package db

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Products   []seedProduct  `yaml:"products"`
}

type seedCategory struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type seedProduct struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	ImageURL      string   `yaml:"image_url"`
	Price         float64  `yaml:"price"`
	OriginalPrice *float64 `yaml:"original_price"`
	Currency      string   `yaml:"currency"`
	Featured      bool     `yaml:"featured"`
	Bestseller    bool     `yaml:"bestseller"`
	New           bool     `yaml:"new"`
	Rating        float64  `yaml:"rating"`
	Reviews       int      `yaml:"reviews"`
	Stock         int      `yaml:"stock"`
}

// Seed upserts categories and products from a YAML catalog file. Seed ids are
// stable so re-running against an existing database updates in place.
func Seed(ctx context.Context, gdb *gorm.DB, log *logger.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range sf.Categories {
			cat := types.Category{ID: sc.ID, Name: sc.Name, Slug: sc.Slug}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "updated_at"}),
			}).Create(&cat).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", sc.ID, err)
			}
		}
		for _, sp := range sf.Products {
			id, err := uuid.Parse(sp.ID)
			if err != nil {
				return fmt.Errorf("seed product %q: invalid id: %w", sp.Name, err)
			}
			currency := sp.Currency
			if currency == "" {
				currency = "$"
			}
			prod := types.Product{
				ID:            id,
				Name:          sp.Name,
				Description:   sp.Description,
				CategoryID:    sp.Category,
				ImageURL:      sp.ImageURL,
				Price:         sp.Price,
				OriginalPrice: sp.OriginalPrice,
				Currency:      currency,
				Featured:      sp.Featured,
				Bestseller:    sp.Bestseller,
				New:           sp.New,
				Rating:        sp.Rating,
				Reviews:       sp.Reviews,
				Stock:         sp.Stock,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "description", "category_id", "image_url", "price",
					"original_price", "currency", "featured", "bestseller",
					"new", "rating", "reviews", "stock", "updated_at",
				}),
			}).Create(&prod).Error; err != nil {
				return fmt.Errorf("seed product %s: %w", sp.ID, err)
			}
		}
		log.Info("Seeded catalog", "categories", len(sf.Categories), "products", len(sf.Products))
		return nil
	})
}
