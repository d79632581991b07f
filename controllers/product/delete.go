package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/blueprint-apparel/shop-api/cache"
	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /admin/products/:id
// Soft delete; variants stay in place so historical order lines keep resolving.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// DELETE /admin/variants/:id
// Deactivates rather than deletes: cart rows reference variants by ID.
func DeleteVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant ID"})
			return
		}

		result := db.Model(&models.ProductVariant{}).Where("id = ?", id).Update("is_active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}

		cache.InvalidatePrefix(c.Request.Context(), "bundle:")

		c.JSON(http.StatusOK, gin.H{"message": "Variant deactivated"})
	}
}
