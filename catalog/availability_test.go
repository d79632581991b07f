package catalog

import (
	"testing"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
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
		&models.Size{},
		&models.Color{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Bundle{},
		&models.BundleItem{},
	))
	return db
}

func seedSize(t *testing.T, db *gorm.DB, code string) models.Size {
	t.Helper()
	size := models.Size{Code: code, Label: code}
	require.NoError(t, db.Create(&size).Error)
	return size
}

func seedProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()
	p := models.Product{
		Name:                 name,
		Slug:                 name,
		BasePrice:            decimal.NewFromInt(25),
		IsActive:             true,
		AvailableForPurchase: true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedVariant(t *testing.T, db *gorm.DB, product models.Product, sizeID uint, stock int) models.ProductVariant {
	t.Helper()
	v := models.ProductVariant{
		ProductID:     product.ID,
		SizeID:        &sizeID,
		StockQuantity: stock,
		Price:         product.BasePrice,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func seedBundle(t *testing.T, db *gorm.DB, name string, componentQty int, components ...models.Product) models.Bundle {
	t.Helper()
	price := decimal.NewFromInt(55)
	b := models.Bundle{
		Name:                 name,
		Slug:                 name,
		Price:                &price,
		IsActive:             true,
		AvailableForPurchase: true,
	}
	require.NoError(t, db.Create(&b).Error)
	for i, p := range components {
		item := models.BundleItem{
			BundleID:     b.ID,
			ProductID:    p.ID,
			Quantity:     componentQty,
			DisplayOrder: i,
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return b
}

func sizeCodes(sizes []models.Size) []string {
	codes := make([]string, 0, len(sizes))
	for _, s := range sizes {
		codes = append(codes, s.Code)
	}
	return codes
}

func TestAvailableSizesIntersection(t *testing.T) {
	db := setupTestDB(t)
	sizeS := seedSize(t, db, "S")
	sizeM := seedSize(t, db, "M")
	sizeL := seedSize(t, db, "L")

	tee := seedProduct(t, db, "Foundation Tee")
	pants := seedProduct(t, db, "Foundation Pants")

	// Tee stocked in S, M, L; pants only in M and L
	seedVariant(t, db, tee, sizeS.ID, 5)
	seedVariant(t, db, tee, sizeM.ID, 5)
	seedVariant(t, db, tee, sizeL.ID, 5)
	seedVariant(t, db, pants, sizeM.ID, 5)
	seedVariant(t, db, pants, sizeL.ID, 5)

	bundle := seedBundle(t, db, "Foundation Set", 1, tee, pants)

	sizes, err := AvailableSizes(db, &bundle)
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "L"}, sizeCodes(sizes))
}

func TestAvailableSizesExcludesDepletedStock(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	sizeL := seedSize(t, db, "L")

	tee := seedProduct(t, db, "Foundation Tee")
	pants := seedProduct(t, db, "Foundation Pants")

	seedVariant(t, db, tee, sizeM.ID, 5)
	seedVariant(t, db, tee, sizeL.ID, 5)
	seedVariant(t, db, pants, sizeM.ID, 5)
	seedVariant(t, db, pants, sizeL.ID, 0) // stocked out

	bundle := seedBundle(t, db, "Foundation Set", 1, tee, pants)

	sizes, err := AvailableSizes(db, &bundle)
	require.NoError(t, err)
	assert.Equal(t, []string{"M"}, sizeCodes(sizes))
}

func TestAvailableSizesHonorsComponentQuantity(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	sizeL := seedSize(t, db, "L")

	sock := seedProduct(t, db, "Crew Sock")
	seedVariant(t, db, sock, sizeM.ID, 3)
	seedVariant(t, db, sock, sizeL.ID, 1)

	// 2 socks per bundle unit: L has only 1 in stock
	bundle := seedBundle(t, db, "Sock Pack", 2, sock)

	sizes, err := AvailableSizes(db, &bundle)
	require.NoError(t, err)
	assert.Equal(t, []string{"M"}, sizeCodes(sizes))
}

func TestAvailableSizesEmptyBundle(t *testing.T) {
	db := setupTestDB(t)
	seedSize(t, db, "M")

	bundle := seedBundle(t, db, "Empty Set", 1)

	sizes, err := AvailableSizes(db, &bundle)
	require.NoError(t, err)
	assert.Empty(t, sizes)
}

func TestAvailableSizesIgnoresInactiveVariants(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")

	tee := seedProduct(t, db, "Foundation Tee")
	variant := seedVariant(t, db, tee, sizeM.ID, 5)
	require.NoError(t, db.Model(&variant).Update("is_active", false).Error)

	bundle := seedBundle(t, db, "Foundation Set", 1, tee)

	sizes, err := AvailableSizes(db, &bundle)
	require.NoError(t, err)
	assert.Empty(t, sizes)
}

func TestResolveVariantsForSize(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")

	tee := seedProduct(t, db, "Foundation Tee")
	pants := seedProduct(t, db, "Foundation Pants")
	teeVariant := seedVariant(t, db, tee, sizeM.ID, 5)
	pantsVariant := seedVariant(t, db, pants, sizeM.ID, 5)

	bundle := seedBundle(t, db, "Foundation Set", 1, tee, pants)

	resolved, err := ResolveVariantsForSize(db, &bundle, sizeM.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, teeVariant.ID, resolved[0].Variant.ID)
	assert.Equal(t, pantsVariant.ID, resolved[1].Variant.ID)
}

func TestResolveVariantsForSizePartialIsNil(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	sizeL := seedSize(t, db, "L")

	tee := seedProduct(t, db, "Foundation Tee")
	pants := seedProduct(t, db, "Foundation Pants")
	seedVariant(t, db, tee, sizeM.ID, 5)
	seedVariant(t, db, tee, sizeL.ID, 5)
	seedVariant(t, db, pants, sizeM.ID, 5)

	bundle := seedBundle(t, db, "Foundation Set", 1, tee, pants)

	// Pants missing in L: no partial bundle
	resolved, err := ResolveVariantsForSize(db, &bundle, sizeL.ID)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestResolveVariantsForSizeTieBreak(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")

	tee := seedProduct(t, db, "Foundation Tee")
	first := seedVariant(t, db, tee, sizeM.ID, 5)
	seedVariant(t, db, tee, sizeM.ID, 5) // second color variant, same size

	bundle := seedBundle(t, db, "Foundation Set", 1, tee)

	resolved, err := ResolveVariantsForSize(db, &bundle, sizeM.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, first.ID, resolved[0].Variant.ID)
}

func TestResolveVariantsForSizeEmptyBundle(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")

	bundle := seedBundle(t, db, "Empty Set", 1)

	resolved, err := ResolveVariantsForSize(db, &bundle, sizeM.ID)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	available, err := IsAvailableInSize(db, &bundle, sizeM.ID)
	require.NoError(t, err)
	assert.False(t, available)
}

func TestActiveVariant(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	tee := seedProduct(t, db, "Foundation Tee")
	variant := seedVariant(t, db, tee, sizeM.ID, 5)

	got, err := ActiveVariant(db, variant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Foundation Tee", got.Product.Name)

	require.NoError(t, db.Model(&variant).Update("is_active", false).Error)
	_, err = ActiveVariant(db, variant.ID)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}
