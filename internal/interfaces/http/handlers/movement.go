// internal/interfaces/http/handlers/movement.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/movement"
)

// MovementHandler handles inventory movement endpoints
type MovementHandler struct {
	movementService *movement.Service
	config          *config.Config
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(db *gorm.DB, cfg *config.Config) *MovementHandler {
	return &MovementHandler{
		movementService: movement.NewService(db, cfg),
		config:          cfg,
	}
}

// GetMovements handles GET /inventory-movements
func (h *MovementHandler) GetMovements(c *gin.Context) {
	var filter movement.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	movements, err := h.movementService.List(&filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory movements retrieved successfully",
		"data":    movements,
	})
}

// GetMovement handles GET /inventory-movements/:id
func (h *MovementHandler) GetMovement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	mv, err := h.movementService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory movement retrieved successfully",
		"data":    mv,
	})
}

// UpdateMovement handles PATCH /inventory-movements/:id
func (h *MovementHandler) UpdateMovement(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req movement.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	mv, err := h.movementService.UpdateType(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory movement updated successfully",
		"data":    mv,
	})
}
