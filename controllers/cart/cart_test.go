package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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

func setupRouter(t *testing.T, userID, role string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Bundle{},
		&models.BundleItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.BundleCartItem{},
	))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	})
	r.GET("/cart", GetCart(db))
	r.GET("/cart/count", GetCartCount(db))
	r.POST("/cart/items", AddCartItem(db))
	r.PUT("/cart/items/:item_id", UpdateCartItem(db))
	r.DELETE("/cart/items/:item_id", DeleteCartItem(db))
	return r, db
}

func seedVariantHTTP(t *testing.T, db *gorm.DB, stock int) models.ProductVariant {
	t.Helper()
	p := models.Product{
		Name:                 "Foundation Tee",
		Slug:                 "foundation-tee",
		BasePrice:            decimal.NewFromInt(25),
		IsActive:             true,
		AvailableForPurchase: true,
	}
	require.NoError(t, db.Create(&p).Error)
	v := models.ProductVariant{
		ProductID:     p.ID,
		StockQuantity: stock,
		Price:         decimal.NewFromInt(25),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItemEndpoint(t *testing.T) {
	r, db := setupRouter(t, "user-1", "user")
	variant := seedVariantHTTP(t, db, 5)

	// First add creates the line item
	w := postJSON(t, r, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Created   bool `json:"created"`
		CartCount int  `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
	assert.Equal(t, 2, resp.CartCount)

	// Second add increments it
	w = postJSON(t, r, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Created)
	assert.Equal(t, 3, resp.CartCount)
}

func TestAddCartItemStockConflict(t *testing.T) {
	r, db := setupRouter(t, "user-1", "user")
	variant := seedVariantHTTP(t, db, 5)

	w := postJSON(t, r, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	// Over stock maps to 409 with the remaining capacity
	w = postJSON(t, r, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error     string `json:"error"`
		Available int    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "only 2 more Foundation Tee available", resp.Error)
	assert.Equal(t, 2, resp.Available)
}

func TestAddCartItemUnknownVariant(t *testing.T) {
	r, _ := setupRouter(t, "user-1", "user")

	w := postJSON(t, r, "/cart/items", gin.H{"variant_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemNotOwnedIs404(t *testing.T) {
	ownerRouter, db := setupRouter(t, "owner", "user")
	variant := seedVariantHTTP(t, db, 5)

	w := postJSON(t, ownerRouter, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Item models.CartItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Same database, different caller
	intruder := gin.New()
	intruder.Use(func(c *gin.Context) {
		c.Set("user_id", "intruder")
		c.Set("role", "user")
	})
	intruder.PUT("/cart/items/:item_id", UpdateCartItem(db))

	raw, _ := json.Marshal(gin.H{"quantity": 3})
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/cart/items/%d", created.Item.ID), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	intruder.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCartCountNeverFails(t *testing.T) {
	r, _ := setupRouter(t, "user-1", "user")

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		CartCount int `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.CartCount)
}

func TestGuestCartIsSeparate(t *testing.T) {
	r, db := setupRouter(t, "user-1", "user")
	variant := seedVariantHTTP(t, db, 5)

	w := postJSON(t, r, "/cart/items", gin.H{"variant_id": variant.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	guest := gin.New()
	guest.Use(func(c *gin.Context) {
		c.Set("user_id", "guest_tok")
		c.Set("role", "guest")
	})
	guest.GET("/cart/count", GetCartCount(db))

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	rec := httptest.NewRecorder()
	guest.ServeHTTP(rec, req)

	var resp struct {
		CartCount int `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.CartCount)
}
