package cart

import (
	"testing"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuestSession{},
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
	return db
}

func seedSize(t *testing.T, db *gorm.DB, code string) models.Size {
	t.Helper()
	size := models.Size{Code: code, Label: code}
	require.NoError(t, db.Create(&size).Error)
	return size
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string) models.Product {
	t.Helper()
	p := models.Product{
		Name:                 name,
		Slug:                 name,
		BasePrice:            mustDecimal(t, price),
		IsActive:             true,
		AvailableForPurchase: true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedVariant(t *testing.T, db *gorm.DB, product models.Product, sizeID *uint, stock int, price string) models.ProductVariant {
	t.Helper()
	v := models.ProductVariant{
		ProductID:     product.ID,
		SizeID:        sizeID,
		StockQuantity: stock,
		Price:         mustDecimal(t, price),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func seedBundle(t *testing.T, db *gorm.DB, name string, price string, components ...models.Product) models.Bundle {
	t.Helper()
	fixed := mustDecimal(t, price)
	b := models.Bundle{
		Name:                 name,
		Slug:                 name,
		Price:                &fixed,
		IsActive:             true,
		AvailableForPurchase: true,
	}
	require.NoError(t, db.Create(&b).Error)
	for i, p := range components {
		item := models.BundleItem{
			BundleID:     b.ID,
			ProductID:    p.ID,
			Quantity:     1,
			DisplayOrder: i,
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return b
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
