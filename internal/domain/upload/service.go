// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles image uploads to local disk
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service and ensures the upload directory exists
func NewService(db *gorm.DB, cfg *config.Config) (*Service, error) {
	if err := os.MkdirAll(cfg.Upload.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Service{db: db, config: cfg}, nil
}

// Result describes a stored file
type Result struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// Save validates and stores an uploaded file under a random name.
// The original filename is never used on disk.
func (s *Service) Save(fileHeader *multipart.FileHeader, uploadedBy uint) (*Result, error) {
	if fileHeader.Size > s.config.Upload.MaxSize {
		return nil, fmt.Errorf("file too large: maximum size is %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !s.isAllowedExtension(ext) {
		return nil, fmt.Errorf("file type .%s is not allowed", ext)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	dstPath := filepath.Join(s.config.Upload.LocalPath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	record := UploadedFile{
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		Size:         size,
		UploadedBy:   uploadedBy,
	}
	if err := s.db.Create(&record).Error; err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &Result{
		ID:       record.ID,
		Filename: filename,
		URL:      fmt.Sprintf("%s/uploads/%s", s.config.App.BaseURL, filename),
		Size:     size,
	}, nil
}

// Delete removes a stored file and its record by the generated filename
func (s *Service) Delete(filename string) error {
	// Reject anything that could escape the upload directory
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("invalid filename")
	}

	result := s.db.Where("filename = ?", filename).Delete(&UploadedFile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete upload record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("file not found")
	}

	path := filepath.Join(s.config.Upload.LocalPath, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns upload records, newest first
func (s *Service) List() ([]UploadedFile, error) {
	var files []UploadedFile
	if err := s.db.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return files, nil
}

func (s *Service) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
