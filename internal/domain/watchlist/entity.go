// internal/domain/watchlist/entity.go
package watchlist

import (
	"time"

	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
)

// Item represents a product saved to a user's watchlist
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_watchlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_watchlist_user_product,unique" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product *product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName overrides the table name for Item
func (Item) TableName() string {
	return "watchlist_items"
}
