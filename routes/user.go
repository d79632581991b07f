package routes

import (
	cartControllers "github.com/blueprint-apparel/shop-api/controllers/cart"
	userControllers "github.com/blueprint-apparel/shop-api/controllers/user"
	"github.com/blueprint-apparel/shop-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT‐protected endpoints. Guest tokens pass
// the same middleware, so the cart works identically before and after login.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/
	}

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetCart(db))            // GET /cart
		cartGroup.GET("/count", cartControllers.GetCartCount(db)) // GET /cart/count
		cartGroup.DELETE("", cartControllers.ClearCart(db))       // DELETE /cart

		cartGroup.POST("/items", cartControllers.AddCartItem(db))               // POST /cart/items
		cartGroup.PUT("/items/:item_id", cartControllers.UpdateCartItem(db))    // PUT /cart/items/:item_id
		cartGroup.DELETE("/items/:item_id", cartControllers.DeleteCartItem(db)) // DELETE /cart/items/:item_id

		cartGroup.POST("/bundle-items", cartControllers.AddBundleCartItem(db))
		cartGroup.PUT("/bundle-items/:item_id", cartControllers.UpdateBundleCartItem(db))
		cartGroup.DELETE("/bundle-items/:item_id", cartControllers.DeleteBundleCartItem(db))
	}
}
