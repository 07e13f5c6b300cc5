// internal/interfaces/http/handlers/report.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/report"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db, cfg),
		config:        cfg,
	}
}

// GetProductStock handles GET /reports/product-stock
func (h *ReportHandler) GetProductStock(c *gin.Context) {
	var req report.ProductStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	result, err := h.reportService.ProductStock(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product stock report retrieved successfully",
		"data":    result,
	})
}

// GetProfitability handles GET /reports/profitability
func (h *ReportHandler) GetProfitability(c *gin.Context) {
	var req report.ProfitabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"code":    "VALIDATION",
			"details": err.Error(),
		})
		return
	}

	result, err := h.reportService.Profitability(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profitability report retrieved successfully",
		"data":    result,
	})
}
