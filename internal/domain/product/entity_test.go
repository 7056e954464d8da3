// internal/domain/product/entity_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		discount int
		want     int64
	}{
		{"no discount", 1000, 0, 1000},
		{"ten percent", 1000, 10, 900},
		{"rounds down", 999, 10, 900},
		{"full discount", 1000, 100, 0},
		{"over full discount clamps", 1000, 150, 0},
		{"negative discount ignored", 1000, -5, 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: tc.price, Discount: tc.discount}
			assert.Equal(t, tc.want, p.DiscountedPrice())
		})
	}
}

func TestIsInStock(t *testing.T) {
	p := Product{Quantity: 5, IsActive: true}
	assert.True(t, p.IsInStock(1))
	assert.True(t, p.IsInStock(5))
	assert.False(t, p.IsInStock(6))
	assert.False(t, p.IsInStock(0))

	inactive := Product{Quantity: 5, IsActive: false}
	assert.False(t, inactive.IsInStock(1))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "wireless-mouse", generateSlug("Wireless Mouse"))
	assert.Equal(t, "4k-tv-55", generateSlug("  4K TV (55\") "))
	assert.Equal(t, "product", generateSlug("!!!"))
}
