// internal/interfaces/http/handlers/banner.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/banner"
)

// BannerHandler handles banner endpoints
type BannerHandler struct {
	bannerService *banner.Service
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(bannerService *banner.Service) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

// ListActiveBanners returns active banners in display order
func (h *BannerHandler) ListActiveBanners(c *gin.Context) {
	banners, err := h.bannerService.GetActiveBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve banners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": banners})
}

// ListBanners returns all banners including inactive ones (admin)
func (h *BannerHandler) ListBanners(c *gin.Context) {
	banners, err := h.bannerService.GetBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve banners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": banners})
}

// CreateBanner creates a new banner (admin)
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req banner.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.bannerService.CreateBanner(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "banner created",
		"data":    b,
	})
}

// UpdateBanner updates an existing banner (admin)
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	bannerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req banner.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.bannerService.UpdateBanner(bannerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "banner updated",
		"data":    b,
	})
}

// DeleteBanner removes a banner (admin)
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	bannerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bannerService.DeleteBanner(bannerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}
