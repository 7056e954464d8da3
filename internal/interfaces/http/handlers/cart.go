// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/cart"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
)

// sessionHeader carries the guest cart session between requests
const sessionHeader = "X-Cart-Session"

// CartHandler handles cart endpoints for users and guests
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the current cart. Logged-in users get their stored
// cart; guests get the Redis session cart keyed by X-Cart-Session.
func (h *CartHandler) GetCart(c *gin.Context) {
	if userID, ok := middleware.GetUserID(c); ok {
		crt, err := h.cartService.GetUserCart(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": crt})
		return
	}

	crt, sessionID, err := h.cartService.GetSessionCart(c.Request.Context(), c.GetHeader(sessionHeader))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve cart"})
		return
	}

	c.Header(sessionHeader, sessionID)
	c.JSON(http.StatusOK, gin.H{"data": crt})
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		crt, err := h.cartService.AddToUserCart(userID, &req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "item added to cart",
			"data":    crt,
		})
		return
	}

	crt, sessionID, err := h.cartService.AddToSessionCart(c.Request.Context(), c.GetHeader(sessionHeader), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header(sessionHeader, sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "item added to cart",
		"data":    crt,
	})
}

// UpdateItem sets the quantity of a cart line; zero removes it
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		crt, err := h.cartService.UpdateUserCartItem(userID, productID, req.Quantity)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "cart updated",
			"data":    crt,
		})
		return
	}

	crt, sessionID, err := h.cartService.UpdateSessionCartItem(c.Request.Context(), c.GetHeader(sessionHeader), productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header(sessionHeader, sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "cart updated",
		"data":    crt,
	})
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if userID, ok := middleware.GetUserID(c); ok {
		if err := h.cartService.RemoveFromUserCart(userID, productID); err != nil {
			respondServiceError(c, err)
			return
		}
		crt, err := h.cartService.GetUserCart(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "item removed from cart",
			"data":    crt,
		})
		return
	}

	crt, sessionID, err := h.cartService.RemoveFromSessionCart(c.Request.Context(), c.GetHeader(sessionHeader), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header(sessionHeader, sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message": "item removed from cart",
		"data":    crt,
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if userID, ok := middleware.GetUserID(c); ok {
		if err := h.cartService.ClearUserCart(userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
		return
	}

	if err := h.cartService.ClearSessionCart(c.Request.Context(), c.GetHeader(sessionHeader)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
