package cart

import (
	"errors"
	"time"

	"github.com/blueprint-apparel/shop-api/catalog"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddBundleItem puts quantity bundle units into the cart for the selected
// size, incrementing the existing (bundle, size) line item if one exists.
// Every component must resolve to an active variant in that size with stock
// for the new line total; a bundle cannot circumvent a component product's
// own availability flag.
func AddBundleItem(db *gorm.DB, cart *models.Cart, bundleID, sizeID uint, quantity int) (*models.BundleCartItem, bool, error) {
	if quantity <= 0 {
		return nil, false, &ValidationError{Message: "quantity must be at least 1"}
	}

	var bundle models.Bundle
	err := db.Preload("Items.Product").
		Where("id = ? AND is_active = ? AND available_for_purchase = ?", bundleID, true, true).
		First(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, &NotFoundError{Resource: "bundle"}
		}
		return nil, false, err
	}

	for _, component := range bundle.Items {
		if !component.Product.AvailableForPurchase {
			return nil, false, &ValidationError{
				Message: component.Product.Name + " is not available for purchase",
			}
		}
	}

	var size models.Size
	if err := db.First(&size, sizeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, &NotFoundError{Resource: "size"}
		}
		return nil, false, err
	}

	resolved, err := catalog.ResolveVariantsForSize(db, &bundle, sizeID)
	if err != nil {
		return nil, false, err
	}
	if resolved == nil {
		return nil, false, &NotFoundError{Resource: "bundle in size " + size.Code}
	}

	var item models.BundleCartItem
	existing := 0
	found := true
	err = db.Where("cart_id = ? AND bundle_id = ? AND size_id = ?", cart.ID, bundleID, sizeID).
		First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		found = false
	} else {
		existing = item.Quantity
	}

	newTotal := existing + quantity
	if err := checkComponentStock(resolved, newTotal); err != nil {
		return nil, false, err
	}

	if found {
		item.Quantity = newTotal
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, false, err
		}
		return &item, false, nil
	}

	item = models.BundleCartItem{
		CartID:   cart.ID,
		BundleID: bundleID,
		SizeID:   sizeID,
		Quantity: quantity,
		AddedAt:  time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// checkComponentStock verifies every resolved component can cover the bundle
// quantity. The first failing component is reported with how many whole
// bundle units its stock supports. A non-positive per-unit quantity (bad row
// written around the API) is treated as one per bundle unit.
func checkComponentStock(resolved []catalog.ComponentVariant, quantity int) error {
	for _, cv := range resolved {
		perUnit := cv.Component.Quantity
		if perUnit <= 0 {
			perUnit = 1
		}
		if perUnit*quantity > cv.Variant.StockQuantity {
			return &InsufficientStockError{
				Item:      cv.Component.Product.Name,
				Available: cv.Variant.StockQuantity / perUnit,
			}
		}
	}
	return nil
}

// findOwnedBundleItem resolves a bundle line item scoped to the identity's
// own active cart.
func findOwnedBundleItem(db *gorm.DB, itemID uint, identity Identity) (*models.BundleCartItem, error) {
	if !identity.valid() {
		return nil, &ValidationError{Message: "identity must be either a user or a guest session"}
	}
	var item models.BundleCartItem
	q := db.Joins("JOIN carts ON carts.id = bundle_cart_items.cart_id").
		Where("bundle_cart_items.id = ?", itemID)
	err := identity.scopeCarts(q, "carts.").First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "cart item"}
		}
		return nil, err
	}
	return &item, nil
}

// UpdateBundleQuantity sets a bundle line item to a new quantity, deleting
// it when the quantity drops to zero or less. Stock is re-validated across
// every component at the new quantity before anything is written; a line
// item is never left violating the component-stock invariant.
func UpdateBundleQuantity(db *gorm.DB, itemID uint, quantity int, identity Identity) (*models.BundleCartItem, error) {
	item, err := findOwnedBundleItem(db, itemID, identity)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := db.Delete(item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	var bundle models.Bundle
	if err := db.Preload("Items.Product").First(&bundle, item.BundleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "bundle"}
		}
		return nil, err
	}

	resolved, err := catalog.ResolveVariantsForSize(db, &bundle, item.SizeID)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, &NotFoundError{Resource: "bundle in selected size"}
	}
	if err := checkComponentStock(resolved, quantity); err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveBundleItem deletes a bundle line item.
func RemoveBundleItem(db *gorm.DB, itemID uint, identity Identity) (bool, error) {
	item, err := UpdateBundleQuantity(db, itemID, 0, identity)
	if err != nil {
		return false, err
	}
	return item == nil, nil
}

// BundleCartTotal sums effective bundle price times quantity over the
// cart's bundle line items.
func BundleCartTotal(db *gorm.DB, cart *models.Cart) (decimal.Decimal, error) {
	var items []models.BundleCartItem
	err := db.Preload("Bundle.Items.Product").Where("cart_id = ?", cart.ID).Find(&items).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Bundle.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}
