package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name           string           `gorm:"size:255;not null" json:"name"`
	Slug           string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Sku            string           `gorm:"size:100;index" json:"sku"`
	Description    string           `gorm:"type:text" json:"description"`
	Brand          string           `gorm:"size:100" json:"brand"`
	Price          decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	CompareAtPrice *decimal.Decimal `gorm:"type:decimal(16,2)" json:"compare_at_price,omitempty"`
	Stock          int              `gorm:"not null" json:"stock"`
	Image          string           `gorm:"size:255" json:"image"`
	Images         []ProductImage   `json:"images,omitempty"`
	CategoryID     string           `gorm:"size:36;index" json:"category_id"`
	Category       *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsNew          bool             `gorm:"default:false" json:"is_new"`
	IsFeatured     bool             `gorm:"default:false" json:"is_featured"`
	IsOnSale       bool             `gorm:"default:false" json:"is_on_sale"`

	// Rating and ReviewCount are derived from reviews and rewritten on
	// every review creation, never edited directly.
	Rating      float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;index;not null" json:"product_id"`
	Path      string    `gorm:"size:255;not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
