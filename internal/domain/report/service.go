// internal/domain/report/service.go
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/sale"
	"github.com/your-org/inventory-backend/internal/domain/shared"
	"github.com/your-org/inventory-backend/internal/domain/stockin"
)

// Service computes read-only projections over the catalog, the movement log,
// and the sales ledger. Nothing here writes to the database.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ProductStock is one row of the stock-on-hand report
type ProductStock struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
	StockOnHand  int             `json:"stock_on_hand"`
	NeedsRestock bool            `json:"needs_restock"`
}

// ProductStockRequest represents product stock report filters
type ProductStockRequest struct {
	Search  string `form:"search"`
	Restock string `form:"restock"` // "r" restock-only, "nr" healthy-only
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

// ProductStockResponse represents the product stock report with pagination
type ProductStockResponse struct {
	Rows       []ProductStock `json:"rows"`
	Pagination Pagination     `json:"pagination"`
}

// ProfitabilityEntry is one row of the profitability report, one per sale item
type ProfitabilityEntry struct {
	SaleItemID   uint            `json:"sale_item_id"`
	SaleID       uint            `json:"sale_id"`
	SaleDatetime time.Time       `json:"sale_datetime"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Discount     decimal.Decimal `json:"discount"`
	Revenue      decimal.Decimal `json:"revenue"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
}

// ProfitabilityRequest represents profitability report filters. Dates are
// YYYY-MM-DD; the end date is inclusive through end of day.
type ProfitabilityRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	ProductID *uint  `form:"product_id"`
	Search    string `form:"search"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ProfitabilityResponse represents the profitability report with pagination
type ProfitabilityResponse struct {
	Rows       []ProfitabilityEntry `json:"rows"`
	Pagination Pagination           `json:"pagination"`
}

type stockRow struct {
	ProductID    uint
	Name         string
	Price        decimal.Decimal
	ReorderLevel int
	StockOnHand  int
}

// ProductStock reports stock on hand per product as the sum of its movement
// quantities. Products with no movements report zero.
func (s *Service) ProductStock(req *ProductStockRequest) (*ProductStockResponse, error) {
	normalizePaging(&req.Page, &req.Limit)

	query := s.db.Table("products").
		Select("products.id AS product_id, products.name, products.price, products.reorder_level, COALESCE(SUM(inventory_movements.quantity), 0) AS stock_on_hand").
		Joins("LEFT JOIN inventory_movements ON inventory_movements.product_id = products.id").
		Group("products.id, products.name, products.price, products.reorder_level")

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ?", search)
	}

	switch req.Restock {
	case "":
	case "r":
		query = query.Having("COALESCE(SUM(inventory_movements.quantity), 0) < products.reorder_level")
	case "nr":
		query = query.Having("COALESCE(SUM(inventory_movements.quantity), 0) >= products.reorder_level")
	default:
		return nil, fmt.Errorf("%w: restock must be 'r' or 'nr'", shared.ErrValidation)
	}

	var total int64
	if err := s.db.Table("(?) AS stock_report", query).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count stock report rows: %w", err)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no products match", shared.ErrEmptyResult)
	}

	var rows []stockRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("products.name ASC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock report: %w", err)
	}

	result := make([]ProductStock, 0, len(rows))
	for _, row := range rows {
		result = append(result, ProductStock{
			ProductID:    row.ProductID,
			Name:         row.Name,
			Price:        row.Price,
			ReorderLevel: row.ReorderLevel,
			StockOnHand:  row.StockOnHand,
			NeedsRestock: row.StockOnHand < row.ReorderLevel,
		})
	}

	return &ProductStockResponse{
		Rows:       result,
		Pagination: buildPagination(req.Page, req.Limit, total),
	}, nil
}

// Profitability reports revenue, cost, and profit per sale item. Cost uses
// the latest stock-in unit cost at or before the sale datetime, falling back
// to the latest known cost for the product, else zero.
func (s *Service) Profitability(req *ProfitabilityRequest) (*ProfitabilityResponse, error) {
	normalizePaging(&req.Page, &req.Limit)

	query := s.db.Model(&sale.SaleItem{}).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id")

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", shared.ErrValidation)
		}
		query = query.Where("sales.sale_datetime >= ?", start)
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", shared.ErrValidation)
		}
		// inclusive through end of day
		query = query.Where("sales.sale_datetime < ?", end.AddDate(0, 0, 1))
	}
	if req.ProductID != nil {
		query = query.Where("sale_items.product_id = ?", *req.ProductID)
	}
	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ?", search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count profitability rows: %w", err)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no sale items match", shared.ErrEmptyResult)
	}

	type itemRow struct {
		SaleItemID   uint
		SaleID       uint
		SaleDatetime time.Time
		ProductID    uint
		ProductName  string
		Quantity     int
		UnitPrice    decimal.Decimal
		Discount     decimal.Decimal
	}

	var items []itemRow
	offset := (req.Page - 1) * req.Limit
	err := query.
		Select("sale_items.id AS sale_item_id, sale_items.sale_id, sales.sale_datetime, sale_items.product_id, products.name AS product_name, sale_items.quantity, sale_items.unit_price, sale_items.discount").
		Order("sales.sale_datetime DESC, sale_items.id DESC").
		Offset(offset).Limit(req.Limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve profitability rows: %w", err)
	}

	rows := make([]ProfitabilityEntry, 0, len(items))
	for _, item := range items {
		unitCost, err := s.costAt(item.ProductID, item.SaleDatetime)
		if err != nil {
			return nil, err
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		revenue := item.UnitPrice.Mul(qty).Sub(item.Discount)
		cost := unitCost.Mul(qty)

		rows = append(rows, ProfitabilityEntry{
			SaleItemID:   item.SaleItemID,
			SaleID:       item.SaleID,
			SaleDatetime: item.SaleDatetime,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Discount:     item.Discount,
			Revenue:      revenue,
			UnitCost:     unitCost,
			Cost:         cost,
			Profit:       revenue.Sub(cost),
		})
	}

	return &ProfitabilityResponse{
		Rows:       rows,
		Pagination: buildPagination(req.Page, req.Limit, total),
	}, nil
}

// costAt finds the unit cost in effect for a product at a point in time:
// the latest stock-in at or before it, then the latest stock-in overall,
// then zero when the product was never stocked in.
func (s *Service) costAt(productID uint, at time.Time) (decimal.Decimal, error) {
	var item stockin.StockInItem
	err := s.db.Model(&stockin.StockInItem{}).
		Joins("JOIN stock_ins ON stock_ins.id = stock_in_items.stock_in_id").
		Where("stock_in_items.product_id = ? AND stock_ins.stock_in_date <= ?", productID, at).
		Order("stock_ins.stock_in_date DESC, stock_in_items.id DESC").
		First(&item).Error
	if err == nil {
		return item.UnitCost, nil
	}
	if err != gorm.ErrRecordNotFound {
		return decimal.Zero, fmt.Errorf("failed to look up unit cost: %w", err)
	}

	err = s.db.Model(&stockin.StockInItem{}).
		Joins("JOIN stock_ins ON stock_ins.id = stock_in_items.stock_in_id").
		Where("stock_in_items.product_id = ?", productID).
		Order("stock_ins.stock_in_date DESC, stock_in_items.id DESC").
		First(&item).Error
	if err == nil {
		return item.UnitCost, nil
	}
	if err != gorm.ErrRecordNotFound {
		return decimal.Zero, fmt.Errorf("failed to look up unit cost: %w", err)
	}
	return decimal.Zero, nil
}

func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 20
	}
	if *limit > 100 {
		*limit = 100
	}
}

func buildPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
