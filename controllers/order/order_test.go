package orderControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func orderRouter(db *gorm.DB, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	})
	r.GET("/orders/user/:userID", GetUserOrdersHandler(db))
	return r
}

func seedOrder(t *testing.T, db *gorm.DB, userID, ref string) models.Order {
	t.Helper()
	uid := userID
	order := models.Order{
		OrderRef:    ref,
		UserID:      &uid,
		Subtotal:    decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(55),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestGetUserOrdersOwnHistory(t *testing.T) {
	db := setupOrderDB(t)
	seedOrder(t, db, "user-1", "ref-1")

	r := orderRouter(db, "user-1", "user")
	req := httptest.NewRequest(http.MethodGet, "/orders/user/user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ref-1", orders[0].OrderRef)
}

func TestGetUserOrdersRejectsOtherUsers(t *testing.T) {
	db := setupOrderDB(t)
	seedOrder(t, db, "victim-user", "ref-1")

	r := orderRouter(db, "attacker", "user")
	req := httptest.NewRequest(http.MethodGet, "/orders/user/victim-user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "ref-1")
}

func TestGetUserOrdersRejectsGuests(t *testing.T) {
	db := setupOrderDB(t)
	seedOrder(t, db, "victim-user", "ref-1")

	r := orderRouter(db, "guest_tok", "guest")
	req := httptest.NewRequest(http.MethodGet, "/orders/user/victim-user", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
