package productcontroller

import (
	"net/http"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/export/stock
// Dumps the variant stock ledger as a spreadsheet for the warehouse team.
func ExportStockToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var variants []models.ProductVariant
		if err := db.Preload("Product").Preload("Size").Preload("Color").
			Order("product_id, id").Find(&variants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Stock")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"VariantID", "SKU", "Product", "Size", "Color",
			"Price", "Stock", "Active", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, v := range variants {
			row := sheet.AddRow()

			row.AddCell().SetValue(v.ID)
			if v.SKU != nil {
				row.AddCell().SetValue(*v.SKU)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(v.Product.Name)
			if v.Size != nil {
				row.AddCell().SetValue(v.Size.Code)
			} else {
				row.AddCell().SetValue("")
			}
			if v.Color != nil {
				row.AddCell().SetValue(v.Color.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(v.Price.StringFixed(2))
			row.AddCell().SetValue(v.StockQuantity)
			row.AddCell().SetValue(v.IsActive)
			row.AddCell().SetValue(v.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=stock.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		// Write file to response
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
