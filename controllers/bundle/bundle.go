package bundlecontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blueprint-apparel/shop-api/cache"
	"github.com/blueprint-apparel/shop-api/catalog"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const sizeCacheTTL = 5 * time.Minute

type BundleInput struct {
	Name                 string           `json:"name" binding:"required"`
	Slug                 string           `json:"slug" binding:"required"`
	Description          string           `json:"description"`
	Price                *decimal.Decimal `json:"price"`
	UseComponentPricing  bool             `json:"use_component_pricing"`
	IsActive             *bool            `json:"is_active"`
	AvailableForPurchase *bool            `json:"available_for_purchase"`
	Featured             bool             `json:"featured"`
}

type BundleItemInput struct {
	ProductID    uint `json:"product_id" binding:"required"`
	Quantity     int  `json:"quantity"`
	DisplayOrder int  `json:"display_order"`
}

func bundleIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bundle ID"})
		return 0, false
	}
	return uint(id), true
}

// GET /bundles
func GetBundles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bundles []models.Bundle
		if err := db.Preload("Items", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order, id")
		}).Preload("Items.Product").
			Where("is_active = ?", true).
			Order("featured DESC, created_at DESC").
			Find(&bundles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bundles"})
			return
		}

		out := make([]gin.H, 0, len(bundles))
		for i := range bundles {
			b := &bundles[i]
			out = append(out, gin.H{
				"bundle":          b,
				"effective_price": b.EffectivePrice(),
				"savings":         b.Savings(),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /bundles/:id
// Detail view includes the sizes the whole bundle is currently available in.
// The size list is the expensive part (one stock scan per component), so it
// is cached per bundle and invalidated on any product, variant or bundle write.
func GetBundleByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}

		var bundle models.Bundle
		if err := db.Preload("Items", func(q *gorm.DB) *gorm.DB {
			return q.Order("display_order, id")
		}).Preload("Items.Product").
			Where("is_active = ?", true).
			First(&bundle, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Bundle not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bundle"})
			}
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("bundle:sizes:%d", bundle.ID)

		var sizes []models.Size
		if !cache.GetJSON(ctx, cacheKey, &sizes) {
			var err error
			sizes, err = catalog.AvailableSizes(db, &bundle)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
				return
			}
			cache.SetJSON(ctx, cacheKey, sizes, sizeCacheTTL)
		}

		c.JSON(http.StatusOK, gin.H{
			"bundle":          bundle,
			"effective_price": bundle.EffectivePrice(),
			"component_total": bundle.ComponentTotal(),
			"savings":         bundle.Savings(),
			"available_sizes": sizes,
		})
	}
}

// GET /bundles/:id/availability?size_id=N
func GetBundleAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}
		sizeID, err := strconv.Atoi(c.Query("size_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size_id is required"})
			return
		}

		var bundle models.Bundle
		if err := db.Where("is_active = ?", true).First(&bundle, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bundle not found"})
			return
		}

		available, err := catalog.IsAvailableInSize(db, &bundle, uint(sizeID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bundle_id": bundle.ID, "size_id": sizeID, "available": available})
	}
}

// POST /admin/bundles
func CreateBundle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BundleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !input.UseComponentPricing && input.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price is required unless use_component_pricing is set"})
			return
		}

		bundle := models.Bundle{
			Name:                 input.Name,
			Slug:                 input.Slug,
			Description:          input.Description,
			Price:                input.Price,
			UseComponentPricing:  input.UseComponentPricing,
			IsActive:             true,
			AvailableForPurchase: true,
			Featured:             input.Featured,
		}
		if input.IsActive != nil {
			bundle.IsActive = *input.IsActive
		}
		if input.AvailableForPurchase != nil {
			bundle.AvailableForPurchase = *input.AvailableForPurchase
		}

		if err := db.Create(&bundle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bundle"})
			return
		}
		c.JSON(http.StatusCreated, bundle)
	}
}

// PUT /admin/bundles/:id
func UpdateBundle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}

		var bundle models.Bundle
		if err := db.First(&bundle, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bundle not found"})
			return
		}

		var input struct {
			Name                 *string          `json:"name"`
			Slug                 *string          `json:"slug"`
			Description          *string          `json:"description"`
			Price                *decimal.Decimal `json:"price"`
			UseComponentPricing  *bool            `json:"use_component_pricing"`
			IsActive             *bool            `json:"is_active"`
			AvailableForPurchase *bool            `json:"available_for_purchase"`
			Featured             *bool            `json:"featured"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			bundle.Name = *input.Name
		}
		if input.Slug != nil {
			bundle.Slug = *input.Slug
		}
		if input.Description != nil {
			bundle.Description = *input.Description
		}
		if input.Price != nil {
			bundle.Price = input.Price
		}
		if input.UseComponentPricing != nil {
			bundle.UseComponentPricing = *input.UseComponentPricing
		}
		if input.IsActive != nil {
			bundle.IsActive = *input.IsActive
		}
		if input.AvailableForPurchase != nil {
			bundle.AvailableForPurchase = *input.AvailableForPurchase
		}
		if input.Featured != nil {
			bundle.Featured = *input.Featured
		}

		if err := db.Save(&bundle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bundle"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, bundle)
	}
}

// POST /admin/bundles/:id/items
func AddBundleComponent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}

		var bundle models.Bundle
		if err := db.First(&bundle, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bundle not found"})
			return
		}

		var input BundleItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			input.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		item := models.BundleItem{
			BundleID:     bundle.ID,
			ProductID:    product.ID,
			Quantity:     input.Quantity,
			DisplayOrder: input.DisplayOrder,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Product already in bundle"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /admin/bundles/:id/items/:item_id
func RemoveBundleComponent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}
		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id"})
			return
		}

		result := db.Where("bundle_id = ?", id).Delete(&models.BundleItem{}, itemID)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove component"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Component not found"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, gin.H{"message": "Component removed"})
	}
}

// DELETE /admin/bundles/:id
func DeleteBundle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := bundleIDParam(c)
		if !ok {
			return
		}

		result := db.Model(&models.Bundle{}).Where("id = ?", id).Update("is_active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bundle"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bundle not found"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, gin.H{"message": "Bundle deactivated"})
	}
}
