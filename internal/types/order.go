package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is immutable history once placed; only Status moves, via the admin
// surface.
type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Items           []OrderItem    `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"items"`
	TotalItems      int            `gorm:"column:total_items;not null" json:"total_items"`
	TotalPrice      float64        `gorm:"column:total_price;not null" json:"total_price"`
	Currency        string         `gorm:"column:currency;not null;default:'$'" json:"currency"`
	Status          string         `gorm:"column:status;not null;default:'pending';index" json:"status"`
	ShippingAddress datatypes.JSON `gorm:"column:shipping_address;type:jsonb" json:"shipping_address"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "order" }

// OrderItem snapshots name and unit price at placement time so later product
// edits do not rewrite history.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"column:product_name;not null" json:"product_name"`
	UnitPrice   float64   `gorm:"column:unit_price;not null" json:"unit_price"`
	Quantity    int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_item" }

// LineTotal is derived, never stored.
func (oi *OrderItem) LineTotal() float64 { return oi.UnitPrice * float64(oi.Quantity) }
