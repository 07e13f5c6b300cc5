// internal/interfaces/http/handlers/stockin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/stockin"
)

// StockInHandler handles stock-in receipt endpoints
type StockInHandler struct {
	stockInService *stockin.Service
	config         *config.Config
}

// NewStockInHandler creates a new stock-in handler
func NewStockInHandler(db *gorm.DB, cfg *config.Config) *StockInHandler {
	return &StockInHandler{
		stockInService: stockin.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateStockIn handles POST /stock-in
func (h *StockInHandler) CreateStockIn(c *gin.Context) {
	var req stockin.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	receipt, err := h.stockInService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock-in receipt created successfully",
		"data":    receipt,
	})
}

// GetStockIns handles GET /stock-in
func (h *StockInHandler) GetStockIns(c *gin.Context) {
	receipts, err := h.stockInService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in receipts retrieved successfully",
		"data":    receipts,
	})
}

// GetStockIn handles GET /stock-in/:id
func (h *StockInHandler) GetStockIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.stockInService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in receipt retrieved successfully",
		"data":    receipt,
	})
}

// UpdateStockIn handles PATCH /stock-in/:id
func (h *StockInHandler) UpdateStockIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stockin.UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	receipt, err := h.stockInService.UpdateHeader(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in receipt updated successfully",
		"data":    receipt,
	})
}

// DeleteStockIn handles DELETE /stock-in/:id
func (h *StockInHandler) DeleteStockIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stockInService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in receipt deleted successfully",
	})
}

// GetStockInItems handles GET /stock-in/:id/items
func (h *StockInHandler) GetStockInItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.stockInService.ListItems(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in items retrieved successfully",
		"data":    items,
	})
}

// AddStockInItem handles POST /stock-in/:id/items
func (h *StockInHandler) AddStockInItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req stockin.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	item, err := h.stockInService.AddItem(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock-in item added successfully",
		"data":    item,
	})
}

// UpdateStockInItem handles PATCH /stock-in/:id/items/:itemId
func (h *StockInHandler) UpdateStockInItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req stockin.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	item, err := h.stockInService.UpdateItem(id, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in item updated successfully",
		"data":    item,
	})
}

// DeleteStockInItem handles DELETE /stock-in/:id/items/:itemId
func (h *StockInHandler) DeleteStockInItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.stockInService.DeleteItem(id, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock-in item deleted successfully",
	})
}
