// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/inventory-backend/internal/domain/shared"
)

// respondError maps domain errors to HTTP status codes and a stable
// machine-readable code alongside the human message
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, shared.ErrNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	case errors.Is(err, shared.ErrEmptyResult):
		status = http.StatusNotFound
		code = "EMPTY_RESULT"
	case errors.Is(err, shared.ErrDuplicateName):
		status = http.StatusBadRequest
		code = "DUPLICATE_NAME"
	case errors.Is(err, shared.ErrDuplicateSKU):
		status = http.StatusBadRequest
		code = "DUPLICATE_SKU"
	case errors.Is(err, shared.ErrDuplicateLineItem):
		status = http.StatusBadRequest
		code = "DUPLICATE_LINE_ITEM"
	case errors.Is(err, shared.ErrInvalidReference):
		status = http.StatusBadRequest
		code = "INVALID_REFERENCE"
	case errors.Is(err, shared.ErrValidation):
		status = http.StatusBadRequest
		code = "VALIDATION"
	case errors.Is(err, shared.ErrConflict):
		status = http.StatusConflict
		code = "CONFLICT"
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
			"code":  "VALIDATION",
		})
		return 0, false
	}
	return uint(id), true
}
