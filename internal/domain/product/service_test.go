// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProductService(t *testing.T) (*Service, *Category) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}))

	category := Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.Create(&category).Error)

	return NewService(db, &config.Config{}), &category
}

func TestCreateProductRequiresCategory(t *testing.T) {
	svc, _ := setupProductService(t)

	_, err := svc.CreateProduct(&CreateProductRequest{
		Name:       "Mouse",
		Price:      300,
		CategoryID: 999,
	})
	assert.ErrorContains(t, err, "category not found")
}

func TestCreateProductGeneratesUniqueSlug(t *testing.T) {
	svc, category := setupProductService(t)

	first, err := svc.CreateProduct(&CreateProductRequest{
		Name: "Wireless Mouse", Price: 300, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "wireless-mouse", first.Slug)

	second, err := svc.CreateProduct(&CreateProductRequest{
		Name: "Wireless Mouse", Price: 350, CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "wireless-mouse-2", second.Slug)
}

func TestGetProductBySlug(t *testing.T) {
	svc, category := setupProductService(t)

	created, err := svc.CreateProduct(&CreateProductRequest{
		Name: "Wireless Mouse", Price: 300, CategoryID: category.ID,
	})
	require.NoError(t, err)

	found, err := svc.GetProductBySlug("wireless-mouse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetProductBySlug("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestInactiveProductHiddenFromPublicReads(t *testing.T) {
	svc, category := setupProductService(t)

	inactive := false
	p, err := svc.CreateProduct(&CreateProductRequest{
		Name: "Hidden", Price: 100, CategoryID: category.ID, IsActive: &inactive,
	})
	require.NoError(t, err)

	_, err = svc.GetProduct(p.ID)
	assert.ErrorContains(t, err, "not found")

	listed, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, listed.Products)

	// admin listing still sees it
	all, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 10, All: true})
	require.NoError(t, err)
	assert.Len(t, all.Products, 1)
}

func TestListProductsFilters(t *testing.T) {
	svc, category := setupProductService(t)

	_, err := svc.CreateProduct(&CreateProductRequest{Name: "Cheap Cable", Price: 50, CategoryID: category.ID})
	require.NoError(t, err)
	_, err = svc.CreateProduct(&CreateProductRequest{Name: "Gaming Mouse", Price: 900, CategoryID: category.ID})
	require.NoError(t, err)

	minPrice := int64(100)
	resp, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 10, MinPrice: &minPrice})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Gaming Mouse", resp.Products[0].Name)

	resp, err = svc.GetProducts(&ProductListRequest{Page: 1, Limit: 10, Search: "cable"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Cheap Cable", resp.Products[0].Name)

	resp, err = svc.GetProducts(&ProductListRequest{Page: 1, Limit: 10, SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Cheap Cable", resp.Products[0].Name)
}

func TestUpdateInventory(t *testing.T) {
	svc, category := setupProductService(t)

	p, err := svc.CreateProduct(&CreateProductRequest{Name: "Mouse", Price: 300, CategoryID: category.ID, Quantity: 5})
	require.NoError(t, err)

	updated, err := svc.UpdateInventory(p.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)

	_, err = svc.UpdateInventory(p.ID, -1)
	assert.ErrorContains(t, err, "negative")

	_, err = svc.UpdateInventory(999, 5)
	assert.ErrorContains(t, err, "not found")
}

func TestUpdateProductValidation(t *testing.T) {
	svc, category := setupProductService(t)

	p, err := svc.CreateProduct(&CreateProductRequest{Name: "Mouse", Price: 300, CategoryID: category.ID})
	require.NoError(t, err)

	badDiscount := 150
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{Discount: &badDiscount})
	assert.ErrorContains(t, err, "discount")

	badPrice := int64(-1)
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{Price: &badPrice})
	assert.ErrorContains(t, err, "negative")

	badCategory := uint(999)
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{CategoryID: &badCategory})
	assert.ErrorContains(t, err, "category not found")
}

func TestDeleteProduct(t *testing.T) {
	svc, category := setupProductService(t)

	p, err := svc.CreateProduct(&CreateProductRequest{Name: "Mouse", Price: 300, CategoryID: category.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(p.ID))

	_, err = svc.GetProduct(p.ID)
	assert.ErrorContains(t, err, "not found")

	assert.ErrorContains(t, svc.DeleteProduct(p.ID), "not found")
}
