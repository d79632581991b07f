package catalog

import (
	"errors"

	"github.com/blueprint-apparel/shop-api/models"
	"gorm.io/gorm"
)

// ErrVariantNotFound is returned when a variant does not exist or is inactive.
var ErrVariantNotFound = errors.New("product variant not found or inactive")

// ActiveVariant looks up a purchasable variant by ID with its product loaded.
// Inactive variants are not purchasable regardless of stock.
func ActiveVariant(db *gorm.DB, variantID uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := db.Preload("Product").
		Where("id = ? AND is_active = ?", variantID, true).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}
