// internal/domain/cart/session_service_test.go
package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// guest cart paths need Redis, backed here by miniredis
func setupSessionCartService(t *testing.T) (*Service, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&product.Category{}, &product.Product{}, &CartItem{}))

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	return NewService(db, client, &config.Config{}), db, mr
}

func TestSessionCartRoundTrip(t *testing.T) {
	svc, db, mr := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	// empty session ID mints a new session
	crt, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, int64(600), crt.Totals.Subtotal)
	assert.True(t, mr.Exists(sessionCartKey(sid)))

	crt, sid2, err := svc.GetSessionCart(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, sid, sid2)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 2, crt.Items[0].Quantity)
}

func TestSessionCartMergesLines(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	crt, _, err := svc.AddToSessionCart(ctx, sid, &AddItemRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 5, crt.Items[0].Quantity)
}

func TestSessionCartStockLimit(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 3)

	_, _, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 4})
	assert.ErrorContains(t, err, "insufficient stock")

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	_, _, err = svc.AddToSessionCart(ctx, sid, &AddItemRequest{ProductID: p.ID, Quantity: 2})
	assert.ErrorContains(t, err, "insufficient stock")
}

func TestSessionCartUpdateZeroRemoves(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	crt, _, err := svc.UpdateSessionCartItem(ctx, sid, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}

func TestMergeSessionCartToUser(t *testing.T) {
	svc, db, mr := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.MergeSessionCartToUser(ctx, sid, 1))

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 3, crt.Items[0].Quantity)

	// consumed guest cart is gone
	assert.False(t, mr.Exists(sessionCartKey(sid)))
}

func TestMergeCapsAtAvailableStock(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 5)

	_, err := svc.AddToUserCart(1, &AddItemRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	require.NoError(t, svc.MergeSessionCartToUser(ctx, sid, 1))

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	require.Len(t, crt.Items, 1)
	assert.Equal(t, 5, crt.Items[0].Quantity)
}

func TestMergeMissingSessionIsNoop(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	seedCartProduct(t, db, "mouse", 300, 0, 10)

	require.NoError(t, svc.MergeSessionCartToUser(context.Background(), "no-such-session", 1))

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}

func TestMergeDropsDeactivatedProducts(t *testing.T) {
	svc, db, _ := setupSessionCartService(t)
	ctx := context.Background()
	p := seedCartProduct(t, db, "mouse", 300, 0, 10)

	_, sid, err := svc.AddToSessionCart(ctx, "", &AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, db.Model(p).Update("is_active", false).Error)

	require.NoError(t, svc.MergeSessionCartToUser(ctx, sid, 1))

	crt, err := svc.GetUserCart(1)
	require.NoError(t, err)
	assert.Empty(t, crt.Items)
}
