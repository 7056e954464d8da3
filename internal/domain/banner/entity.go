// internal/domain/banner/entity.go
package banner

import (
	"time"
)

// Banner represents a promotional banner shown on the storefront
type Banner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:150" json:"title"`
	Subtitle     string    `gorm:"size:255" json:"subtitle"`
	Image        string    `gorm:"not null;size:500" json:"image"`
	TargetURL    string    `gorm:"size:500" json:"target_url"`
	DisplayOrder int       `gorm:"not null;index" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides the table name for Banner
func (Banner) TableName() string {
	return "banners"
}
