package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blueprint-apparel/shop-api/cart"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartItemInput struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type QuantityInput struct {
	Quantity int `json:"quantity"`
}

// identityFromContext builds the cart identity the middleware stored:
// logged-in users own carts by user ID, guests by session token.
func identityFromContext(c *gin.Context) (cart.Identity, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return cart.Identity{}, false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return cart.Identity{}, false
	}
	if role, _ := c.Get("role"); role == "guest" {
		return cart.GuestIdentity(id), true
	}
	return cart.UserIdentity(id), true
}

// respondCartError maps the cart engine's error kinds onto HTTP statuses.
// All three carry user-facing messages and are surfaced verbatim.
func respondCartError(c *gin.Context, err error) {
	var notFound *cart.NotFoundError
	var validation *cart.ValidationError
	var stock *cart.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{"error": stock.Error(), "available": stock.Available})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart operation failed"})
	}
}

func itemIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("item_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id"})
		return 0, false
	}
	return uint(id), true
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userCart, _, err := cart.GetOrCreateCart(db, identity)
		if err != nil {
			respondCartError(c, err)
			return
		}

		items, err := cart.ListItems(db, userCart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		bundleItems, err := cart.ListBundleItems(db, userCart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		total, err := cart.CartTotal(db, userCart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to total cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cart_id":      userCart.ID,
			"items":        items,
			"bundle_items": bundleItems,
			"cart_count":   cart.CartItemCount(db, userCart),
			"cart_total":   total,
		})
	}
}

// GET /cart/count
// Rendered on every page, so this never fails: errors degrade to zero.
func GetCartCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"cart_count": 0})
			return
		}
		userCart, _, err := cart.GetOrCreateCart(db, identity)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"cart_count": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart_count": cart.CartItemCount(db, userCart)})
	}
}

// POST /cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
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

		item, created, err := cart.AddItem(db, userCart, input.VariantID, input.Quantity)
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

// PUT /cart/items/:item_id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
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

		item, err := cart.UpdateItemQuantity(db, itemID, input.Quantity, identity)
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

// DELETE /cart/items/:item_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
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

		if _, err := cart.RemoveItem(db, itemID, identity); err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userCart, created, err := cart.GetOrCreateCart(db, identity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		if !created {
			if err := cart.ClearCart(db, userCart); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		userCart, _, err := cart.GetOrCreateCart(db, cart.UserIdentity(userID))
		if err != nil {
			respondCartError(c, err)
			return
		}
		items, err := cart.ListItems(db, userCart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		bundleItems, err := cart.ListBundleItems(db, userCart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "bundle_items": bundleItems})
	}
}
