// internal/domain/upload/service_test.go
package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUploadService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&UploadedFile{}))

	cfg := &config.Config{
		App: config.AppConfig{BaseURL: "http://localhost:8080"},
		Upload: config.UploadConfig{
			LocalPath:         t.TempDir(),
			MaxSize:           1024,
			AllowedExtensions: []string{"jpg", "png"},
		},
	}

	svc, err := NewService(db, cfg)
	require.NoError(t, err)
	return svc
}

func multipartFile(t *testing.T, fieldName, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File[fieldName][0]
}

func TestSaveGeneratesRandomFilename(t *testing.T) {
	svc := setupUploadService(t)

	fh := multipartFile(t, "image", "photo.JPG", []byte("fake image data"))
	result, err := svc.Save(fh, 1)
	require.NoError(t, err)

	assert.NotContains(t, result.Filename, "photo")
	assert.Equal(t, ".jpg", filepath.Ext(result.Filename))
	assert.Contains(t, result.URL, "/uploads/"+result.Filename)

	stored := filepath.Join(svc.config.Upload.LocalPath, result.Filename)
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image data"), data)

	// original name is kept on the record only
	files, err := svc.List()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "photo.JPG", files[0].OriginalName)
	assert.Equal(t, uint(1), files[0].UploadedBy)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	svc := setupUploadService(t)

	fh := multipartFile(t, "image", "script.exe", []byte("nope"))
	_, err := svc.Save(fh, 1)
	assert.ErrorContains(t, err, "not allowed")
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	svc := setupUploadService(t)

	fh := multipartFile(t, "image", "big.jpg", make([]byte, 2048))
	_, err := svc.Save(fh, 1)
	assert.ErrorContains(t, err, "too large")
}

func TestDeleteRejectsPathTraversal(t *testing.T) {
	svc := setupUploadService(t)

	assert.Error(t, svc.Delete("../secrets.txt"))
	assert.Error(t, svc.Delete(""))
}

func TestDeleteRemovesFileAndRecord(t *testing.T) {
	svc := setupUploadService(t)

	fh := multipartFile(t, "image", "photo.png", []byte("data"))
	result, err := svc.Save(fh, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(result.Filename))

	files, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, files)

	assert.ErrorContains(t, svc.Delete(result.Filename), "not found")
}
