package productcontroller

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/blueprint-apparel/shop-api/cache"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name                 string          `json:"name" binding:"required"`
	Slug                 string          `json:"slug"`
	Description          string          `json:"description"`
	BasePrice            decimal.Decimal `json:"base_price" binding:"required"`
	IsActive             *bool           `json:"is_active"`
	AvailableForPurchase *bool           `json:"available_for_purchase"`
	Featured             bool            `json:"featured"`
}

type VariantInput struct {
	SKU           *string          `json:"sku"`
	SizeID        *uint            `json:"size_id"`
	ColorID       *uint            `json:"color_id"`
	StockQuantity int              `json:"stock_quantity"`
	Price         *decimal.Decimal `json:"price"`
	IsActive      *bool            `json:"is_active"`
}

// slugify lowercases and replaces runs of non-alphanumerics with a hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slug := input.Slug
		if slug == "" {
			slug = slugify(input.Name)
		}

		product := models.Product{
			Name:                 input.Name,
			Slug:                 slug,
			Description:          input.Description,
			BasePrice:            input.BasePrice,
			IsActive:             true,
			AvailableForPurchase: true,
			Featured:             input.Featured,
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.AvailableForPurchase != nil {
			product.AvailableForPurchase = *input.AvailableForPurchase
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// POST /admin/products/:id/variants
func CreateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input VariantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity cannot be negative"})
			return
		}

		variant := models.ProductVariant{
			ProductID:     product.ID,
			SKU:           input.SKU,
			SizeID:        input.SizeID,
			ColorID:       input.ColorID,
			StockQuantity: input.StockQuantity,
			IsActive:      true,
		}
		if input.Price != nil {
			variant.Price = *input.Price
		} else {
			variant.Price = product.BasePrice
		}
		if input.IsActive != nil {
			variant.IsActive = *input.IsActive
		}

		if err := db.Create(&variant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
			return
		}

		// Stock changed, so cached bundle availability may be stale.
		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusCreated, variant)
	}
}
