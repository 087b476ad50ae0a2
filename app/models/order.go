package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

// orderTransitions lists the legal next statuses for each current status.
// Cancellation is allowed from any non-terminal state.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode string `gorm:"size:50;not null;uniqueIndex" json:"order_code"`
	UserID    string `gorm:"size:36;index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID" json:"-"`

	OrderItems []OrderItem `json:"items"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"shipping_cost"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"tax_amount"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"grand_total"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Address1  string `gorm:"size:255;not null" json:"address1"`
	Address2  string `gorm:"size:255" json:"address2"`
	City      string `gorm:"size:100;not null" json:"city"`
	PostCode  string `gorm:"size:10;not null" json:"post_code"`

	PaymentMethod string `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:50;not null" json:"payment_status"`
	PaymentRef    string `gorm:"size:100" json:"payment_ref"`

	Status string `gorm:"size:50;not null;default:'pending'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
