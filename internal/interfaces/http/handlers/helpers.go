// internal/interfaces/http/handlers/helpers.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter. A malformed or
// non-positive ID behaves like a missing resource.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError translates a service error to an HTTP response.
// Services signal missing resources with "not found" messages; anything
// else from the domain layer is a client error.
func respondServiceError(c *gin.Context, err error) {
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
