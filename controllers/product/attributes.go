package productcontroller

import (
	"net/http"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SizeInput struct {
	Code  string `json:"code" binding:"required"`
	Label string `json:"label"`
}

type ColorInput struct {
	Name string `json:"name" binding:"required"`
}

// GET /sizes
func GetAllSizes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sizes []models.Size
		if err := db.Order("id").Find(&sizes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sizes"})
			return
		}
		c.JSON(http.StatusOK, sizes)
	}
}

// POST /admin/sizes
func CreateSize(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SizeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		size := models.Size{Code: input.Code, Label: input.Label}
		if err := db.Create(&size).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Size code already exists"})
			return
		}
		c.JSON(http.StatusCreated, size)
	}
}

// GET /colors
func GetAllColors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var colors []models.Color
		if err := db.Order("id").Find(&colors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colors"})
			return
		}
		c.JSON(http.StatusOK, colors)
	}
}

// POST /admin/colors
func CreateColor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ColorInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		color := models.Color{Name: input.Name}
		if err := db.Create(&color).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Color already exists"})
			return
		}
		c.JSON(http.StatusCreated, color)
	}
}
