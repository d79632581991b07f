package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /auth/guest
// CreateGuestSession issues a session token for an anonymous shopper plus a
// guest JWT carrying it. The token keys the guest's cart until login.
func CreateGuestSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := "guest_" + generateRandomString(16)

		session := models.GuestSession{
			Token:     token,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest session"})
			return
		}

		jwtToken, err := issueToken(token, "guest", "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_token": token,
			"token":         jwtToken,
			"expires_at":    session.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
