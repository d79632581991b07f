package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/blueprint-apparel/shop-api/cache"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductUpdateInput struct {
	Name                 *string          `json:"name"`
	Slug                 *string          `json:"slug"`
	Description          *string          `json:"description"`
	BasePrice            *decimal.Decimal `json:"base_price"`
	IsActive             *bool            `json:"is_active"`
	AvailableForPurchase *bool            `json:"available_for_purchase"`
	Featured             *bool            `json:"featured"`
}

type VariantUpdateInput struct {
	SKU           *string          `json:"sku"`
	SizeID        *uint            `json:"size_id"`
	ColorID       *uint            `json:"color_id"`
	StockQuantity *int             `json:"stock_quantity"`
	Price         *decimal.Decimal `json:"price"`
	IsActive      *bool            `json:"is_active"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Slug != nil {
			product.Slug = *input.Slug
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.BasePrice != nil {
			product.BasePrice = *input.BasePrice
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.AvailableForPurchase != nil {
			product.AvailableForPurchase = *input.AvailableForPurchase
		}
		if input.Featured != nil {
			product.Featured = *input.Featured
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, product)
	}
}

// PUT /admin/variants/:id
func UpdateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant ID"})
			return
		}

		var variant models.ProductVariant
		if err := db.First(&variant, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}

		var input VariantUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.StockQuantity != nil {
			if *input.StockQuantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity cannot be negative"})
				return
			}
			variant.StockQuantity = *input.StockQuantity
		}
		if input.SKU != nil {
			variant.SKU = input.SKU
		}
		if input.SizeID != nil {
			variant.SizeID = input.SizeID
		}
		if input.ColorID != nil {
			variant.ColorID = input.ColorID
		}
		if input.Price != nil {
			variant.Price = *input.Price
		}
		if input.IsActive != nil {
			variant.IsActive = *input.IsActive
		}

		if err := db.Save(&variant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, variant)
	}
}
