// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Quantity: 2, UnitPrice: 100, LineTotal: 200},
		{ProductID: 2, Quantity: 1, UnitPrice: 350, LineTotal: 350},
		{ProductID: 3, Quantity: 5, UnitPrice: 10, LineTotal: 50},
	}

	totals := CalculateTotals(lines)
	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, 8, totals.TotalItems)
	assert.Equal(t, int64(600), totals.Subtotal)
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)
	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0, totals.TotalItems)
	assert.Equal(t, int64(0), totals.Subtotal)
}
