package routes

import (
	"github.com/blueprint-apparel/shop-api/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))

		// Login merges the guest cart named in the request body.
		authGroup.POST("/login", auth.Login(db))

		// Anonymous shoppers get a session token so they can carry a cart.
		authGroup.POST("/guest", auth.CreateGuestSession(db))
	}
}
