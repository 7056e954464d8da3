// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// user cart paths run entirely against the database, so tests use an
// in-memory SQLite and no Redis client
func setupCartService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&product.Category{}, &product.Product{}, &CartItem{}))

	return NewService(db, nil, &config.Config{}), db
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, price int64, discount, stock int) *product.Product {
	t.Helper()

	category := product.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.FirstOrCreate(&category, product.Category{Slug: "electronics"}).Error)

	p := &product.Product{
		Name:       name,
		Slug:       name,
		Price:      price,
		Discount:   discount,
		Quantity:   stock,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestAddToUserCartMergesLines(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	crt, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 2, crt.Items[0].Quantity)

	crt, err = svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 5, crt.Items[0].Quantity)
	assert.Equal(t, int64(1500), crt.Totals.Subtotal)
}

func TestAddToUserCartStockLimit(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 3)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 4})
	assert.ErrorContains(t, err, "insufficient stock")

	_, err = svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	// merged quantity may not exceed stock either
	_, err = svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	assert.ErrorContains(t, err, "insufficient stock")
}

func TestCartUsesDiscountedPrices(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 1000, 25, 10)

	crt, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(750), crt.Items[0].UnitPrice)
	assert.Equal(t, int64(1500), crt.Totals.Subtotal)
}

func TestCartTotalsTrackPriceChanges(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 1000, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	// price drops after the item was added
	require.NoError(t, db.Model(p).Update("price", 800).Error)

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Equal(t, int64(800), crt.Totals.Subtotal)
}

func TestUpdateUserCartItemZeroRemoves(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	crt, err := svc.UpdateUserCartItem(1, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
	assert.Equal(t, int64(0), crt.Totals.Subtotal)
}

func TestUpdateMissingCartItem(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.UpdateUserCartItem(1, p.ID, 2)
	assert.ErrorContains(t, err, "not found")
}

func TestInactiveProductExcludedFromCart(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(p).Update("is_active", false).Error)

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}

func TestClearUserCart(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ClearUserCart(1))

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, db := setupCartService(t)
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	crt, err := svc.GetUserCart(2)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}
