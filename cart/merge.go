package cart

import (
	"errors"
	"time"

	"github.com/blueprint-apparel/shop-api/models"
	"gorm.io/gorm"
)

// MergeCarts folds the anonymous cart identified by sessionToken into the
// user's active cart, creating the latter if needed. Regular lines merge by
// variant, bundle lines by (bundle, size); quantities add. The anonymous
// cart is emptied and deactivated so it can never be reused, which also
// makes a second merge with the same token a no-op. Merged quantities are
// NOT re-checked against stock here; the next add or update on the line
// item enforces the invariant.
func MergeCarts(db *gorm.DB, userID, sessionToken string) (*models.Cart, error) {
	if userID == "" {
		return nil, &ValidationError{Message: "user is required"}
	}

	var userCart models.Cart
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND is_active = ?", userID, true).First(&userCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uid := userID
			userCart = models.Cart{UserID: &uid, IsActive: true}
			if err := tx.Create(&userCart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if sessionToken == "" {
			return nil
		}

		var anonCart models.Cart
		err = tx.Where("session_token = ? AND is_active = ?", sessionToken, true).First(&anonCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to merge
		} else if err != nil {
			return err
		}

		var anonItems []models.CartItem
		if err := tx.Where("cart_id = ?", anonCart.ID).Find(&anonItems).Error; err != nil {
			return err
		}
		for _, anonItem := range anonItems {
			var userItem models.CartItem
			err := tx.Where("cart_id = ? AND variant_id = ?", userCart.ID, anonItem.VariantID).
				First(&userItem).Error
			if err == nil {
				userItem.Quantity += anonItem.Quantity
				userItem.AddedAt = time.Now()
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				moved := models.CartItem{
					CartID:    userCart.ID,
					VariantID: anonItem.VariantID,
					Quantity:  anonItem.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&moved).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}

		var anonBundleItems []models.BundleCartItem
		if err := tx.Where("cart_id = ?", anonCart.ID).Find(&anonBundleItems).Error; err != nil {
			return err
		}
		for _, anonItem := range anonBundleItems {
			var userItem models.BundleCartItem
			err := tx.Where("cart_id = ? AND bundle_id = ? AND size_id = ?",
				userCart.ID, anonItem.BundleID, anonItem.SizeID).
				First(&userItem).Error
			if err == nil {
				userItem.Quantity += anonItem.Quantity
				userItem.AddedAt = time.Now()
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				moved := models.BundleCartItem{
					CartID:   userCart.ID,
					BundleID: anonItem.BundleID,
					SizeID:   anonItem.SizeID,
					Quantity: anonItem.Quantity,
					AddedAt:  time.Now(),
				}
				if err := tx.Create(&moved).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", anonCart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", anonCart.ID).Delete(&models.BundleCartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", anonCart.ID).Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &userCart, nil
}
