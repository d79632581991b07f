package cart

import (
	"errors"

	"github.com/blueprint-apparel/shop-api/models"
	"gorm.io/gorm"
)

// GetOrCreateCart resolves the identity's single active cart, creating one
// lazily on the first cart interaction. The second return reports whether a
// new cart was created. Resolve and insert run in one transaction so two
// racing first interactions cannot both create a cart.
func GetOrCreateCart(db *gorm.DB, identity Identity) (*models.Cart, bool, error) {
	if !identity.valid() {
		return nil, false, &ValidationError{Message: "identity must be either a user or a guest session"}
	}

	var cart models.Cart
	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		err := identity.scopeCarts(tx, "").First(&cart).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		cart = models.Cart{IsActive: true}
		if identity.UserID != "" {
			userID := identity.UserID
			cart.UserID = &userID
		} else {
			token := identity.SessionToken
			cart.SessionToken = &token
		}
		if err := tx.Create(&cart).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &cart, created, nil
}

// ListItems returns the cart's regular line items with variants loaded,
// oldest first.
func ListItems(db *gorm.DB, cart *models.Cart) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Variant.Product").
		Preload("Variant.Size").
		Preload("Variant.Color").
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListBundleItems returns the cart's bundle line items with bundles,
// components and sizes loaded, oldest first.
func ListBundleItems(db *gorm.DB, cart *models.Cart) ([]models.BundleCartItem, error) {
	var items []models.BundleCartItem
	err := db.Preload("Bundle.Items.Product").
		Preload("Size").
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ClearCart deletes every line item of both kinds and deactivates the cart.
// Used after checkout; the next cart interaction starts a fresh cart.
func ClearCart(db *gorm.DB, cart *models.Cart) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.BundleCartItem{}).Error; err != nil {
			return err
		}
		cart.IsActive = false
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("is_active", false).Error
	})
}
