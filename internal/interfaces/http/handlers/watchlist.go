// internal/interfaces/http/handlers/watchlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/watchlist"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
)

// WatchlistHandler handles watchlist endpoints
type WatchlistHandler struct {
	watchlistService *watchlist.Service
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService *watchlist.Service) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// GetWatchlist returns the current user's watchlist
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	items, err := h.watchlistService.GetWatchlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ToggleItem adds or removes a product from the watchlist
func (h *WatchlistHandler) ToggleItem(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	result, err := h.watchlistService.Toggle(userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "product removed from watchlist"
	if result.Added {
		message = "product added to watchlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    result,
	})
}

// RemoveItem removes a product from the watchlist
func (h *WatchlistHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.watchlistService.Remove(userID, productID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed from watchlist"})
}

// ClearWatchlist empties the current user's watchlist
func (h *WatchlistHandler) ClearWatchlist(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.watchlistService.Clear(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "watchlist cleared"})
}
