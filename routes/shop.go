package routes

import (
	bundlecontroller "github.com/blueprint-apparel/shop-api/controllers/bundle"
	productcontroller "github.com/blueprint-apparel/shop-api/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupShopRoutes registers the public storefront endpoints. No auth: anyone
// can browse the catalog.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Products ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))

	// ──────────────── Bundles ────────────────
	bundles := r.Group("/bundles")
	{
		bundles.GET("", bundlecontroller.GetBundles(db))
		bundles.GET("/:id", bundlecontroller.GetBundleByID(db))
		bundles.GET("/:id/availability", bundlecontroller.GetBundleAvailability(db))
	}

	// ──────────────── Attributes ────────────────
	r.GET("/sizes", productcontroller.GetAllSizes(db))
	r.GET("/colors", productcontroller.GetAllColors(db))
}
