package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots a purchased line: Price is the unit price at the
// time of purchase, not a live reference to the product's current price.
type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string          `gorm:"size:36;index;not null" json:"order_id"`
	Order       *Order          `gorm:"foreignKey:OrderID" json:"-"`
	ProductID   string          `gorm:"size:36;index;not null" json:"product_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	ProductSlug string          `gorm:"size:255" json:"product_slug"`
	Qty         int             `gorm:"not null" json:"qty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
