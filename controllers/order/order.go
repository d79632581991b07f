package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/blueprint-apparel/shop-api/cart"
	"github.com/blueprint-apparel/shop-api/catalog"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method" binding:"required"` // e.g. "card", "cod"
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// Orders above this subtotal ship free.
var freeShippingThreshold = decimal.NewFromInt(100)
var flatShippingRate = decimal.NewFromInt(5)

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

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

// -------- Core Logic --------

// Checkout turns the identity's active cart into an order. Every touched
// variant row is locked FOR UPDATE, stock is revalidated and deducted, prices
// are snapshotted onto order items, and the cart is emptied. Any shortfall
// rolls the whole order back.
func Checkout(db *gorm.DB, identity cart.Identity, req CheckoutRequest) (*models.Order, error) {
	userCart, created, err := cart.GetOrCreateCart(db, identity)
	if err != nil {
		return nil, err
	}
	if created {
		return nil, errors.New("cart is empty")
	}

	items, err := cart.ListItems(db, userCart)
	if err != nil {
		return nil, err
	}
	bundleItems, err := cart.ListBundleItems(db, userCart)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && len(bundleItems) == 0 {
		return nil, errors.New("cart is empty")
	}

	var order models.Order

	err = db.Transaction(func(tx *gorm.DB) error {
		subtotal := decimal.Zero
		var orderItems []models.OrderItem

		// Regular lines: lock the variant, deduct, snapshot.
		for _, item := range items {
			var variant models.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Product").
				First(&variant, item.VariantID).Error; err != nil {
				return err
			}

			if variant.StockQuantity < item.Quantity {
				return errors.New("insufficient stock for " + variant.Product.Name)
			}
			variant.StockQuantity -= item.Quantity
			if err := tx.Save(&variant).Error; err != nil {
				return err
			}

			lineTotal := variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			sku := ""
			if variant.SKU != nil {
				sku = *variant.SKU
			}
			variantID := variant.ID
			orderItems = append(orderItems, models.OrderItem{
				VariantID: &variantID,
				SizeID:    variant.SizeID,
				SKU:       sku,
				Name:      variant.Product.Name,
				Quantity:  item.Quantity,
				UnitPrice: variant.Price,
				LineTotal: lineTotal,
			})
		}

		// Bundle lines: re-resolve components for the chosen size, lock and
		// deduct each component variant, snapshot one line per bundle.
		for _, item := range bundleItems {
			resolved, err := catalog.ResolveVariantsForSize(tx, &item.Bundle, item.SizeID)
			if err != nil {
				return err
			}
			if resolved == nil {
				return errors.New(item.Bundle.Name + " is no longer available in " + item.Size.Code)
			}

			for _, cv := range resolved {
				var variant models.ProductVariant
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&variant, cv.Variant.ID).Error; err != nil {
					return err
				}
				needed := cv.Component.Quantity * item.Quantity
				if variant.StockQuantity < needed {
					return errors.New("insufficient stock for " + cv.Component.Product.Name)
				}
				variant.StockQuantity -= needed
				if err := tx.Save(&variant).Error; err != nil {
					return err
				}
			}

			unitPrice := item.Bundle.EffectivePrice()
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			bundleID := item.BundleID
			sizeID := item.SizeID
			orderItems = append(orderItems, models.OrderItem{
				BundleID:  &bundleID,
				SizeID:    &sizeID,
				Name:      item.Bundle.Name + " (" + item.Size.Code + ")",
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
			})
		}

		shipping := flatShippingRate
		if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
			shipping = decimal.Zero
		}

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userCart.UserID,
			Email:         req.Email,
			Items:         orderItems,
			Subtotal:      subtotal,
			ShippingCost:  shipping,
			TotalAmount:   subtotal.Add(shipping),
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return cart.ClearCart(tx, userCart)
	})
	if err != nil {
		return nil, err
	}

	notifyOrderPlaced(&order)
	return &order, nil
}

// -------- Handlers --------

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := Checkout(db, identity, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetUserOrdersHandler returns order history for the caller only: the URL
// param must match the token identity. Guests have no order history.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		identity, ok := identityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if identity.UserID == "" || identity.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own orders"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Get single order by ID or order_ref
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Where("id = ? OR order_ref = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// Update order status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		notifyStatusChange(orderID, string(newStatus))
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// Delete order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
