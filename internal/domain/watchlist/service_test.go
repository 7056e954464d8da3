// internal/domain/watchlist/service_test.go
package watchlist

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

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&product.Category{}, &product.Product{}, &Item{}))

	return NewService(db, &config.Config{}), db
}

func seedProduct(t *testing.T, db *gorm.DB, active bool) *product.Product {
	t.Helper()

	category := product.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.FirstOrCreate(&category, product.Category{Slug: "electronics"}).Error)

	p := product.Product{
		Name:       "Wireless Mouse",
		Slug:       "wireless-mouse",
		Price:      500,
		Quantity:   10,
		CategoryID: category.ID,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestToggleAddsAndRemoves(t *testing.T) {
	svc, db := setupTestService(t)
	p := seedProduct(t, db, true)

	result, err := svc.Toggle(1, p.ID)
	require.NoError(t, err)
	assert.True(t, result.Added)

	items, err := svc.GetWatchlist(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Wireless Mouse", items[0].Product.Name)

	// toggling again removes the item
	result, err = svc.Toggle(1, p.ID)
	require.NoError(t, err)
	assert.False(t, result.Added)

	items, err = svc.GetWatchlist(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleUnknownProduct(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Toggle(1, 999)
	assert.ErrorContains(t, err, "not found")
}

func TestToggleInactiveProduct(t *testing.T) {
	svc, db := setupTestService(t)
	p := seedProduct(t, db, false)

	_, err := svc.Toggle(1, p.ID)
	assert.ErrorContains(t, err, "not found")
}

func TestWatchlistsAreScopedPerUser(t *testing.T) {
	svc, db := setupTestService(t)
	p := seedProduct(t, db, true)

	_, err := svc.Toggle(1, p.ID)
	require.NoError(t, err)

	items, err := svc.GetWatchlist(2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAndClear(t *testing.T) {
	svc, db := setupTestService(t)
	p := seedProduct(t, db, true)

	_, err := svc.Toggle(1, p.ID)
	require.NoError(t, err)

	assert.ErrorContains(t, svc.Remove(1, 999), "not found")
	require.NoError(t, svc.Remove(1, p.ID))

	_, err = svc.Toggle(1, p.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(1))

	items, err := svc.GetWatchlist(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
