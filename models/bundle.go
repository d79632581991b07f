package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bundle is a fixed set of products sold together. The customer picks one
// size and that size is projected onto every component product.
// Example: "Foundation Set" in M = Foundation Tee (M) + Foundation Pants (M).
type Bundle struct {
	ID                   uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string           `gorm:"not null" json:"name"`
	Slug                 string           `gorm:"uniqueIndex;not null" json:"slug"`
	Description          string           `json:"description"`
	Price                *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price,omitempty"` // fixed price, optional with component pricing
	UseComponentPricing  bool             `gorm:"default:false" json:"use_component_pricing"`
	IsActive             bool             `gorm:"default:true;index" json:"is_active"`
	AvailableForPurchase bool             `gorm:"default:true" json:"available_for_purchase"`
	Featured             bool             `gorm:"default:false;index" json:"featured"`
	Items                []BundleItem     `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// ComponentTotal is the price of buying every component individually.
// Items and their Products must be preloaded.
func (b *Bundle) ComponentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Product.BasePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// EffectivePrice is the amount actually charged per bundle unit: the fixed
// price, or the component total when component pricing is enabled.
func (b *Bundle) EffectivePrice() decimal.Decimal {
	if b.UseComponentPricing {
		return b.ComponentTotal()
	}
	if b.Price != nil {
		return *b.Price
	}
	return decimal.Zero
}

// Savings is how much the fixed bundle price undercuts the component total.
func (b *Bundle) Savings() decimal.Decimal {
	if b.UseComponentPricing {
		return decimal.Zero
	}
	return b.ComponentTotal().Sub(b.EffectivePrice())
}

// BundleItem is one component product of a bundle. Quantity is the number of
// units of the product included per bundle unit; the concrete variant is
// resolved from the size chosen at purchase.
type BundleItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BundleID     uint    `gorm:"index;uniqueIndex:idx_bundle_product" json:"bundle_id"`
	ProductID    uint    `gorm:"uniqueIndex:idx_bundle_product" json:"product_id"`
	Product      Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	DisplayOrder int     `gorm:"default:0" json:"display_order"`
}
