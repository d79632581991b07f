package catalog

import (
	"errors"

	"github.com/blueprint-apparel/shop-api/models"
	"gorm.io/gorm"
)

// ComponentVariant pairs a bundle component with the concrete variant that
// fulfills it for a chosen size.
type ComponentVariant struct {
	Component models.BundleItem
	Variant   models.ProductVariant
}

// AvailableSizes returns the sizes in which every component product of the
// bundle has an active variant stocked to at least the component's per-unit
// quantity. The first component's in-stock sizes seed the set and every
// other component intersects it. A bundle with no components has none.
func AvailableSizes(db *gorm.DB, bundle *models.Bundle) ([]models.Size, error) {
	var items []models.BundleItem
	if err := db.Where("bundle_id = ?", bundle.ID).
		Order("display_order, id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.Size{}, nil
	}

	var common map[uint]bool
	for i, item := range items {
		ids, err := sizeIDsInStock(db, item)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			common = ids
		} else {
			for id := range common {
				if !ids[id] {
					delete(common, id)
				}
			}
		}
		if len(common) == 0 {
			return []models.Size{}, nil
		}
	}

	sizeIDs := make([]uint, 0, len(common))
	for id := range common {
		sizeIDs = append(sizeIDs, id)
	}

	var sizes []models.Size
	if err := db.Where("id IN ?", sizeIDs).Order("id").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// sizeIDsInStock collects the size IDs for which the component's product has
// an active variant with enough stock for one bundle unit.
func sizeIDsInStock(db *gorm.DB, item models.BundleItem) (map[uint]bool, error) {
	var ids []uint
	err := db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND is_active = ? AND stock_quantity >= ? AND size_id IS NOT NULL",
			item.ProductID, true, item.Quantity).
		Pluck("size_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ResolveVariantsForSize maps every component of the bundle to the variant
// matching the requested size with enough stock for one bundle unit. It
// returns nil (with no error) if any component cannot be resolved: partial
// bundles are never offered. When a component product has several variants
// in the same size (color variants, say), the lowest variant ID wins.
func ResolveVariantsForSize(db *gorm.DB, bundle *models.Bundle, sizeID uint) ([]ComponentVariant, error) {
	var items []models.BundleItem
	if err := db.Preload("Product").
		Where("bundle_id = ?", bundle.ID).
		Order("display_order, id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	resolved := make([]ComponentVariant, 0, len(items))
	for _, item := range items {
		var variant models.ProductVariant
		err := db.Where("product_id = ? AND size_id = ? AND is_active = ? AND stock_quantity >= ?",
			item.ProductID, sizeID, true, item.Quantity).
			Order("id").
			First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		resolved = append(resolved, ComponentVariant{Component: item, Variant: variant})
	}
	return resolved, nil
}

// IsAvailableInSize reports whether the bundle can be purchased in the size.
func IsAvailableInSize(db *gorm.DB, bundle *models.Bundle, sizeID uint) (bool, error) {
	resolved, err := ResolveVariantsForSize(db, bundle, sizeID)
	if err != nil {
		return false, err
	}
	return resolved != nil, nil
}
