// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // store currency units
	Discount    int            `gorm:"default:0" json:"discount"` // percentage 0-100
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`
	Image       string         `gorm:"size:500" json:"image"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Category represents a product category
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:120" json:"slug"`
	Image     string         `gorm:"size:500" json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// DiscountedPrice returns the effective unit price after discount
func (p *Product) DiscountedPrice() int64 {
	if p.Discount <= 0 {
		return p.Price
	}
	if p.Discount >= 100 {
		return 0
	}
	return p.Price - (p.Price*int64(p.Discount))/100
}

// IsInStock returns true when at least the requested quantity is available
func (p *Product) IsInStock(quantity int) bool {
	return p.IsActive && p.Quantity >= quantity && quantity > 0
}
