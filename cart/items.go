package cart

import (
	"errors"
	"log"
	"time"

	"github.com/blueprint-apparel/shop-api/catalog"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddItem puts quantity units of a variant into the cart, incrementing the
// existing line item if one exists for the variant. The new line total must
// not exceed the variant's stock. The second return reports whether a new
// line item was created.
func AddItem(db *gorm.DB, cart *models.Cart, variantID uint, quantity int) (*models.CartItem, bool, error) {
	if quantity <= 0 {
		return nil, false, &ValidationError{Message: "quantity must be at least 1"}
	}

	variant, err := catalog.ActiveVariant(db, variantID)
	if err != nil {
		if errors.Is(err, catalog.ErrVariantNotFound) {
			return nil, false, &NotFoundError{Resource: "product variant"}
		}
		return nil, false, err
	}

	var item models.CartItem
	existing := 0
	found := true
	err = db.Where("cart_id = ? AND variant_id = ?", cart.ID, variantID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		found = false
	} else {
		existing = item.Quantity
	}

	newTotal := existing + quantity
	if newTotal > variant.StockQuantity {
		return nil, false, &InsufficientStockError{
			Item:       variant.Product.Name,
			Available:  variant.StockQuantity - existing,
			Additional: true,
		}
	}

	if found {
		item.Quantity = newTotal
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, false, err
		}
		return &item, false, nil
	}

	item = models.CartItem{
		CartID:    cart.ID,
		VariantID: variantID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, false, err
	}
	return &item, true, nil
}

// findOwnedItem resolves a line item scoped to the identity's own active
// cart. A line item in someone else's cart is indistinguishable from a
// missing one.
func findOwnedItem(db *gorm.DB, itemID uint, identity Identity) (*models.CartItem, error) {
	if !identity.valid() {
		return nil, &ValidationError{Message: "identity must be either a user or a guest session"}
	}
	var item models.CartItem
	q := db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ?", itemID)
	err := identity.scopeCarts(q, "carts.").First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "cart item"}
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets a line item to a new quantity. A quantity of zero
// or less deletes the line item and returns nil. The update is rejected
// outright if the quantity exceeds the variant's stock; there is no partial
// update.
func UpdateItemQuantity(db *gorm.DB, itemID uint, quantity int, identity Identity) (*models.CartItem, error) {
	item, err := findOwnedItem(db, itemID, identity)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := db.Delete(item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	var variant models.ProductVariant
	if err := db.Preload("Product").First(&variant, item.VariantID).Error; err != nil {
		return nil, err
	}
	if quantity > variant.StockQuantity {
		return nil, &InsufficientStockError{
			Item:      variant.Product.Name,
			Available: variant.StockQuantity,
		}
	}

	item.Quantity = quantity
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line item. Removing an already-removed item fails
// with NotFoundError, same as any other missing item.
func RemoveItem(db *gorm.DB, itemID uint, identity Identity) (bool, error) {
	item, err := UpdateItemQuantity(db, itemID, 0, identity)
	if err != nil {
		return false, err
	}
	return item == nil, nil
}

// CartTotal sums variant price times quantity over the regular line items
// plus the bundle line total. Pure read, never mutates.
func CartTotal(db *gorm.DB, cart *models.Cart) (decimal.Decimal, error) {
	var items []models.CartItem
	if err := db.Preload("Variant").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	bundleTotal, err := BundleCartTotal(db, cart)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Add(bundleTotal), nil
}

// CartItemCount sums quantities across both line-item kinds. It runs on
// every page render, so failures degrade to 0 and are logged instead of
// propagating.
func CartItemCount(db *gorm.DB, cart *models.Cart) int {
	count := 0

	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		log.Println("cart: counting items:", err)
		return 0
	}
	for _, item := range items {
		count += item.Quantity
	}

	var bundleItems []models.BundleCartItem
	if err := db.Where("cart_id = ?", cart.ID).Find(&bundleItems).Error; err != nil {
		log.Println("cart: counting bundle items:", err)
		return 0
	}
	for _, item := range bundleItems {
		count += item.Quantity
	}

	return count
}
