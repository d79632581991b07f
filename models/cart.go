package models

import "time"

// Cart is the single live cart for one identity. Exactly one of UserID or
// SessionToken is set: UserID for logged-in users, SessionToken for guests.
// Carts are deactivated (not deleted) when merged or checked out.
type Cart struct {
	ID           uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *string          `gorm:"index" json:"user_id,omitempty"`
	SessionToken *string          `gorm:"index" json:"session_token,omitempty"`
	IsActive     bool             `gorm:"default:true;index" json:"is_active"`
	Items        []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	BundleItems  []BundleCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"bundle_items,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"` // useful for expiring stale carts
}

// CartItem is a single-variant cart line. At most one row per (cart, variant);
// repeated adds increment the quantity instead of duplicating rows.
type CartItem struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint           `gorm:"index;uniqueIndex:idx_cart_variant" json:"cart_id"`
	VariantID uint           `gorm:"uniqueIndex:idx_cart_variant;not null" json:"variant_id"`
	Variant   ProductVariant `gorm:"foreignKey:VariantID" json:"variant"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time      `json:"added_at"`
}

// BundleCartItem is a bundle cart line with the size the customer selected.
// At most one row per (cart, bundle, size).
type BundleCartItem struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID   uint      `gorm:"index;uniqueIndex:idx_cart_bundle_size" json:"cart_id"`
	BundleID uint      `gorm:"uniqueIndex:idx_cart_bundle_size;not null" json:"bundle_id"`
	Bundle   Bundle    `gorm:"foreignKey:BundleID" json:"bundle"`
	SizeID   uint      `gorm:"uniqueIndex:idx_cart_bundle_size;not null" json:"size_id"`
	Size     Size      `gorm:"foreignKey:SizeID" json:"size"`
	Quantity int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}
