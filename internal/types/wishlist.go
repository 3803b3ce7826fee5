package types

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_user_product,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_product,unique" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProductID;references:ID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (WishlistItem) TableName() string { return "wishlist_item" }
