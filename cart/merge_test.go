package cart

import (
	"testing"

	"github.com/blueprint-apparel/shop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCartsAddsQuantities(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Foundation Tee", "25.00")
	variant := seedVariant(t, db, product, nil, 10, "25.00")

	userCart, _, err := GetOrCreateCart(db, UserIdentity("user-1"))
	require.NoError(t, err)
	_, _, err = AddItem(db, userCart, variant.ID, 3)
	require.NoError(t, err)

	anonCart, _, err := GetOrCreateCart(db, GuestIdentity("guest_tok"))
	require.NoError(t, err)
	_, _, err = AddItem(db, anonCart, variant.ID, 2)
	require.NoError(t, err)

	merged, err := MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)
	assert.Equal(t, userCart.ID, merged.ID)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND variant_id = ?", merged.ID, variant.ID).
		First(&item).Error)
	assert.Equal(t, 5, item.Quantity)

	// The anonymous cart is emptied and deactivated
	var anon models.Cart
	require.NoError(t, db.First(&anon, anonCart.ID).Error)
	assert.False(t, anon.IsActive)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", anonCart.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestMergeCartsMovesNewLines(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	tee := seedProduct(t, db, "Foundation Tee", "25.00")
	teeVariant := seedVariant(t, db, tee, &sizeM.ID, 10, "25.00")
	bundle := seedBundle(t, db, "Foundation Set", "55.00", tee)

	anonCart, _, err := GetOrCreateCart(db, GuestIdentity("guest_tok"))
	require.NoError(t, err)
	_, _, err = AddItem(db, anonCart, teeVariant.ID, 2)
	require.NoError(t, err)
	_, _, err = AddBundleItem(db, anonCart, bundle.ID, sizeM.ID, 1)
	require.NoError(t, err)

	// User had no cart at all before login
	merged, err := MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ?", merged.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)

	var bundleItem models.BundleCartItem
	require.NoError(t, db.Where("cart_id = ?", merged.ID).First(&bundleItem).Error)
	assert.Equal(t, bundle.ID, bundleItem.BundleID)
	assert.Equal(t, sizeM.ID, bundleItem.SizeID)
}

func TestMergeCartsBundleLinesMergeBySize(t *testing.T) {
	db := setupTestDB(t)
	sizeM := seedSize(t, db, "M")
	sizeL := seedSize(t, db, "L")
	tee := seedProduct(t, db, "Foundation Tee", "25.00")
	seedVariant(t, db, tee, &sizeM.ID, 20, "25.00")
	seedVariant(t, db, tee, &sizeL.ID, 20, "25.00")
	bundle := seedBundle(t, db, "Foundation Set", "55.00", tee)

	userCart, _, err := GetOrCreateCart(db, UserIdentity("user-1"))
	require.NoError(t, err)
	_, _, err = AddBundleItem(db, userCart, bundle.ID, sizeM.ID, 1)
	require.NoError(t, err)

	anonCart, _, err := GetOrCreateCart(db, GuestIdentity("guest_tok"))
	require.NoError(t, err)
	_, _, err = AddBundleItem(db, anonCart, bundle.ID, sizeM.ID, 2)
	require.NoError(t, err)
	_, _, err = AddBundleItem(db, anonCart, bundle.ID, sizeL.ID, 1)
	require.NoError(t, err)

	merged, err := MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)

	// Same size merged, different size moved as its own line
	var mItem models.BundleCartItem
	require.NoError(t, db.Where("cart_id = ? AND size_id = ?", merged.ID, sizeM.ID).
		First(&mItem).Error)
	assert.Equal(t, 3, mItem.Quantity)

	var lItem models.BundleCartItem
	require.NoError(t, db.Where("cart_id = ? AND size_id = ?", merged.ID, sizeL.ID).
		First(&lItem).Error)
	assert.Equal(t, 1, lItem.Quantity)
}

func TestMergeCartsNoStockRevalidation(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Foundation Tee", "25.00")
	variant := seedVariant(t, db, product, nil, 5, "25.00")

	userCart, _, err := GetOrCreateCart(db, UserIdentity("user-1"))
	require.NoError(t, err)
	_, _, err = AddItem(db, userCart, variant.ID, 4)
	require.NoError(t, err)

	anonCart, _, err := GetOrCreateCart(db, GuestIdentity("guest_tok"))
	require.NoError(t, err)
	_, _, err = AddItem(db, anonCart, variant.ID, 4)
	require.NoError(t, err)

	// 4 + 4 exceeds the 5 in stock; the merge still goes through and the
	// overage surfaces on the next quantity change or at checkout.
	merged, err := MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND variant_id = ?", merged.ID, variant.ID).
		First(&item).Error)
	assert.Equal(t, 8, item.Quantity)
}

func TestMergeCartsNoGuestCartIsNoop(t *testing.T) {
	db := setupTestDB(t)

	merged, err := MergeCarts(db, "user-1", "guest_never_existed")
	require.NoError(t, err)
	assert.NotNil(t, merged)

	assert.Equal(t, 0, CartItemCount(db, merged))
}

func TestMergeCartsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Foundation Tee", "25.00")
	variant := seedVariant(t, db, product, nil, 10, "25.00")

	anonCart, _, err := GetOrCreateCart(db, GuestIdentity("guest_tok"))
	require.NoError(t, err)
	_, _, err = AddItem(db, anonCart, variant.ID, 2)
	require.NoError(t, err)

	_, err = MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)

	// Second merge with the same token finds only a deactivated cart
	merged, err := MergeCarts(db, "user-1", "guest_tok")
	require.NoError(t, err)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND variant_id = ?", merged.ID, variant.ID).
		First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestMergeCartsRequiresUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := MergeCarts(db, "", "guest_tok")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
