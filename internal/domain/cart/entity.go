// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
)

// CartItem represents a cart line for a logged-in user, stored in the database
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a guest cart kept in Redis
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents a single line of a guest cart
type SessionCartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Line represents a priced cart line returned to clients
type Line struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice int64            `json:"unit_price"` // discounted price at read time
	LineTotal int64            `json:"line_total"`
	Product   *product.Product `json:"product,omitempty"`
}

// Totals represents computed cart totals. Totals are never stored;
// they are recomputed from current product prices on every read.
type Totals struct {
	ItemCount  int   `json:"item_count"`  // distinct lines
	TotalItems int   `json:"total_items"` // sum of quantities
	Subtotal   int64 `json:"subtotal"`
}

// Cart represents a cart with priced lines and totals
type Cart struct {
	Items  []Line `json:"items"`
	Totals Totals `json:"totals"`
}

// CalculateTotals computes cart totals from priced lines
func CalculateTotals(lines []Line) Totals {
	totals := Totals{}
	for _, line := range lines {
		totals.ItemCount++
		totals.TotalItems += line.Quantity
		totals.Subtotal += line.LineTotal
	}
	return totals
}
