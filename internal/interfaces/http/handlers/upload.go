// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/upload"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
)

// UploadHandler handles image upload endpoints (admin)
type UploadHandler struct {
	uploadService *upload.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.Service) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage stores a single uploaded image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	userID, _ := middleware.GetUserID(c)

	result, err := h.uploadService.Save(fileHeader, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "image uploaded",
		"data":    result,
	})
}

// ListImages returns upload records, newest first
func (h *UploadHandler) ListImages(c *gin.Context) {
	files, err := h.uploadService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list uploads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": files})
}

// DeleteImage removes a previously uploaded image by filename
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.uploadService.Delete(filename); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
