package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null;index" json:"name"`
	Description   string         `gorm:"column:description" json:"description"`
	CategoryID    string         `gorm:"column:category_id;not null;index" json:"category_id"`
	Category      *Category      `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	ImageURL      string         `gorm:"column:image_url" json:"image_url"`
	Price         float64        `gorm:"column:price;not null" json:"price"`
	OriginalPrice *float64       `gorm:"column:original_price" json:"original_price,omitempty"`
	Currency      string         `gorm:"column:currency;not null;default:'$'" json:"currency"`
	Featured      bool           `gorm:"column:featured;not null;default:false" json:"featured"`
	Bestseller    bool           `gorm:"column:bestseller;not null;default:false" json:"bestseller"`
	New           bool           `gorm:"column:new;not null;default:false" json:"new"`
	Rating        float64        `gorm:"column:rating;not null;default:0" json:"rating"`
	Reviews       int            `gorm:"column:reviews;not null;default:0" json:"reviews"`
	Stock         int            `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "product" }

// InStock reports whether the product can still be purchased.
func (p *Product) InStock() bool { return p.Stock > 0 }

type Category struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;column:slug;not null" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string { return "category" }
