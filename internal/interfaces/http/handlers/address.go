// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/user"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
)

// AddressHandler handles address endpoints
type AddressHandler struct {
	addressService *user.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *user.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// ListAddresses returns the current user's addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	addresses, err := h.addressService.GetUserAddresses(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": addresses})
}

// GetAddress returns a single address
func (h *AddressHandler) GetAddress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.GetAddress(userID, addressID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": address})
}

// CreateAddress adds a new address
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req user.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addressService.CreateAddress(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "address created",
		"data":    address,
	})
}

// UpdateAddress updates an existing address
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req user.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.addressService.UpdateAddress(userID, addressID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "address updated",
		"data":    address,
	})
}

// SetDefaultAddress marks an address as the default
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.SetDefaultAddress(userID, addressID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "default address updated",
		"data":    address,
	})
}

// DeleteAddress removes an address
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.DeleteAddress(userID, addressID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}
