package cartControllers

import (
	"net/http"

	"github.com/blueprint-apparel/shop-api/cart"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BundleCartItemInput struct {
	BundleID uint `json:"bundle_id" binding:"required"`
	SizeID   uint `json:"size_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// POST /cart/bundle-items
func AddBundleCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input BundleCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		userCart, _, err := cart.GetOrCreateCart(db, identity)
		if err != nil {
			respondCartError(c, err)
			return
		}

		item, created, err := cart.AddBundleItem(db, userCart, input.BundleID, input.SizeID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"item":       item,
			"created":    created,
			"cart_count": cart.CartItemCount(db, userCart),
		})
	}
}

// PUT /cart/bundle-items/:item_id
func UpdateBundleCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := cart.UpdateBundleQuantity(db, itemID, input.Quantity, identity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/bundle-items/:item_id
func DeleteBundleCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}

		if _, err := cart.RemoveBundleItem(db, itemID, identity); err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}
