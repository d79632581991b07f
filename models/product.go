package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                   uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string           `gorm:"not null" json:"name"`
	Slug                 string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description          string           `json:"description"`
	BasePrice            decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Image                string           `json:"image"`
	IsActive             bool             `gorm:"default:true;index" json:"is_active"`
	AvailableForPurchase bool             `gorm:"default:true" json:"available_for_purchase"` // visible but not buyable when false
	Featured             bool             `gorm:"default:false;index" json:"featured"`
	Variants             []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	DeletedAt            gorm.DeletedAt   `gorm:"index" json:"-"`
}

type Size struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Code  string `gorm:"uniqueIndex;not null" json:"code"` // e.g. XS, S, M, L, XL
	Label string `json:"label"`
}

type Color struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// ProductVariant is the concrete purchasable unit: one size/color combination
// of a product with its own SKU, price and stock count.
type ProductVariant struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	Product       Product         `gorm:"foreignKey:ProductID" json:"-"`
	SKU           *string         `gorm:"uniqueIndex" json:"sku,omitempty"`
	SizeID        *uint           `gorm:"index" json:"size_id,omitempty"`
	Size          *Size           `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	ColorID       *uint           `json:"color_id,omitempty"`
	Color         *Color          `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive      bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
