// internal/domain/upload/entity.go
package upload

import (
	"time"
)

// UploadedFile records a stored image so orphans can be tracked and deleted
type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"uniqueIndex;not null;size:100" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	Size         int64     `gorm:"not null" json:"size"`
	UploadedBy   uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides the table name for UploadedFile
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
