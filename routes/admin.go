package routes

import (
	bundlecontroller "github.com/blueprint-apparel/shop-api/controllers/bundle"
	cartControllers "github.com/blueprint-apparel/shop-api/controllers/cart"
	productcontroller "github.com/blueprint-apparel/shop-api/controllers/product"
	userControllers "github.com/blueprint-apparel/shop-api/controllers/user"
	"github.com/blueprint-apparel/shop-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/:id/variants", productcontroller.CreateVariant(db))
		}
		adminGroup.PUT("/variants/:id", productcontroller.UpdateVariant(db))
		adminGroup.DELETE("/variants/:id", productcontroller.DeleteVariant(db))
		adminGroup.GET("/export/stock", productcontroller.ExportStockToExcel(db))

		// ─────────── Bundle Management ───────────
		bundleAdmin := adminGroup.Group("/bundles")
		{
			bundleAdmin.POST("", bundlecontroller.CreateBundle(db))
			bundleAdmin.PUT("/:id", bundlecontroller.UpdateBundle(db))
			bundleAdmin.DELETE("/:id", bundlecontroller.DeleteBundle(db))
			bundleAdmin.POST("/:id/items", bundlecontroller.AddBundleComponent(db))
			bundleAdmin.DELETE("/:id/items/:item_id", bundlecontroller.RemoveBundleComponent(db))
		}

		// ─────────── Attribute Management ───────────
		adminGroup.POST("/sizes", productcontroller.CreateSize(db))
		adminGroup.POST("/colors", productcontroller.CreateColor(db))

		// ─────────── Cart Inspection ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
