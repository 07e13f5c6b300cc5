// internal/domain/sale/service.go
package sale

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/catalog"
	"github.com/your-org/inventory-backend/internal/domain/movement"
	"github.com/your-org/inventory-backend/internal/domain/shared"
)

// Service handles sales business logic. Item mutations run in a transaction
// that also adjusts the matching SALE movement (negative quantity) and
// recomputes the sale total. Selling below stock on hand is allowed; the
// ledger simply goes negative.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sale service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ItemRequest represents one line item on a new sale
type ItemRequest struct {
	ProductID uint             `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal  `json:"unit_price" binding:"required"`
	Discount  *decimal.Decimal `json:"discount"`
}

// CreateRequest represents sale creation data
type CreateRequest struct {
	SaleDatetime  *time.Time    `json:"sale_datetime"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	Notes         *string       `json:"notes"`
	Items         []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateHeaderRequest represents a partial update of sale header fields
type UpdateHeaderRequest struct {
	SaleDatetime  *time.Time     `json:"sale_datetime"`
	PaymentMethod *PaymentMethod `json:"payment_method"`
	Notes         *string        `json:"notes"`
}

// ItemUpdateRequest represents a partial update of a single line item
type ItemUpdateRequest struct {
	ProductID *uint            `json:"product_id"`
	Quantity  *int             `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// Create records a new sale with its items and one SALE movement per item.
// Movements carry negative quantities so the ledger sums to stock on hand.
func (s *Service) Create(req *CreateRequest) (*Sale, error) {
	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: payment_method must be one of Cash, Card, QR", shared.ErrValidation)
	}
	for _, item := range req.Items {
		if err := validateItemAmounts(item.UnitPrice, item.Discount); err != nil {
			return nil, err
		}
	}
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: product %d appears twice in this sale", shared.ErrDuplicateLineItem, item.ProductID)
		}
		seen[item.ProductID] = true
	}

	saleDatetime := time.Now()
	if req.SaleDatetime != nil {
		saleDatetime = *req.SaleDatetime
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, item := range req.Items {
		var product catalog.Product
		if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, item.ProductID)
		}
	}

	sale := Sale{
		SaleDatetime:  saleDatetime,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		TotalAmount:   decimal.Zero,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	total := decimal.Zero
	for _, item := range req.Items {
		discount := decimal.Zero
		if item.Discount != nil {
			discount = *item.Discount
		}
		record := SaleItem{
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  discount,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create sale item: %w", err)
		}
		total = total.Add(record.LineAmount())

		mv := movement.InventoryMovement{
			ProductID:    record.ProductID,
			MovementType: movement.TypeSale,
			Quantity:     -record.Quantity,
			SaleItemID:   &record.ID,
			MovementDate: saleDatetime,
		}
		if err := tx.Create(&mv).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record movement: %w", err)
		}
	}

	if err := tx.Model(&Sale{}).Where("id = ?", sale.ID).Update("total_amount", total).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update total_amount: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	s.db.Preload("Items").First(&sale, sale.ID)
	return &sale, nil
}

// List retrieves all sales with their items, newest first
func (s *Service) List() ([]Sale, error) {
	var sales []Sale
	if err := s.db.Preload("Items").Order("sale_datetime DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("%w: no sales", shared.ErrEmptyResult)
	}
	return sales, nil
}

// Get retrieves a single sale by ID with all items
func (s *Service) Get(id uint) (*Sale, error) {
	var sale Sale
	result := s.db.Preload("Items").Where("id = ?", id).First(&sale)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: sale %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", result.Error)
	}
	return &sale, nil
}

// UpdateHeader partially updates a sale's header fields (not items)
func (s *Service) UpdateHeader(id uint, req *UpdateHeaderRequest) (*Sale, error) {
	var sale Sale
	result := s.db.Where("id = ?", id).First(&sale)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: sale %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find sale: %w", result.Error)
	}

	if req.PaymentMethod != nil && !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: payment_method must be one of Cash, Card, QR", shared.ErrValidation)
	}

	updates := make(map[string]interface{})
	if req.SaleDatetime != nil {
		updates["sale_datetime"] = *req.SaleDatetime
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&sale).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update sale: %w", err)
		}
	}

	s.db.Preload("Items").First(&sale, sale.ID)
	return &sale, nil
}

// Delete removes a sale, its items, and the movements those items produced
func (s *Service) Delete(id uint) error {
	var sale Sale
	result := s.db.Preload("Items").Where("id = ?", id).First(&sale)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: sale %d", shared.ErrNotFound, id)
		}
		return fmt.Errorf("failed to find sale: %w", result.Error)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	itemIDs := make([]uint, 0, len(sale.Items))
	for _, item := range sale.Items {
		itemIDs = append(itemIDs, item.ID)
	}

	if len(itemIDs) > 0 {
		if err := tx.Where("sale_item_id IN ?", itemIDs).Delete(&movement.InventoryMovement{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete movements: %w", err)
		}
		if err := tx.Where("sale_id = ?", id).Delete(&SaleItem{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete sale items: %w", err)
		}
	}

	if err := tx.Delete(&sale).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	return tx.Commit().Error
}

// ListItems retrieves the items of one sale
func (s *Service) ListItems(saleID uint) ([]SaleItem, error) {
	if _, err := s.Get(saleID); err != nil {
		return nil, err
	}
	var items []SaleItem
	if err := s.db.Where("sale_id = ?", saleID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sale items: %w", err)
	}
	return items, nil
}

// AddItem adds a new line item to an existing sale, appends its movement,
// and recomputes the sale total
func (s *Service) AddItem(saleID uint, req *ItemRequest) (*SaleItem, error) {
	if err := validateItemAmounts(req.UnitPrice, req.Discount); err != nil {
		return nil, err
	}

	var sale Sale
	if err := s.db.Where("id = ?", saleID).First(&sale).Error; err != nil {
		return nil, fmt.Errorf("%w: sale %d", shared.ErrNotFound, saleID)
	}

	var product catalog.Product
	if err := s.db.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, req.ProductID)
	}

	var existing SaleItem
	if result := s.db.Where("sale_id = ? AND product_id = ?", saleID, req.ProductID).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: product %d is already on sale %d", shared.ErrDuplicateLineItem, req.ProductID, saleID)
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item := SaleItem{
		SaleID:    saleID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Discount:  discount,
	}
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create sale item: %w", err)
	}

	mv := movement.InventoryMovement{
		ProductID:    item.ProductID,
		MovementType: movement.TypeSale,
		Quantity:     -item.Quantity,
		SaleItemID:   &item.ID,
		MovementDate: sale.SaleDatetime,
	}
	if err := tx.Create(&mv).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	if err := s.recomputeTotal(tx, saleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit sale item: %w", err)
	}
	return &item, nil
}

// UpdateItem partially updates a line item, adjusts its movement, and
// recomputes the sale total
func (s *Service) UpdateItem(saleID, itemID uint, req *ItemUpdateRequest) (*SaleItem, error) {
	var item SaleItem
	result := s.db.Where("id = ? AND sale_id = ?", itemID, saleID).First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d on sale %d", shared.ErrNotFound, itemID, saleID)
		}
		return nil, fmt.Errorf("failed to find sale item: %w", result.Error)
	}

	if req.ProductID != nil {
		var product catalog.Product
		if err := s.db.Where("id = ?", *req.ProductID).First(&product).Error; err != nil {
			return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, *req.ProductID)
		}
		var existing SaleItem
		if result := s.db.Where("sale_id = ? AND product_id = ? AND id <> ?", saleID, *req.ProductID, itemID).First(&existing); result.Error == nil {
			return nil, fmt.Errorf("%w: product %d is already on sale %d", shared.ErrDuplicateLineItem, *req.ProductID, saleID)
		}
	}
	if req.UnitPrice != nil && !req.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: unit_price must be positive", shared.ErrValidation)
	}
	if req.Discount != nil && req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", shared.ErrValidation)
	}

	if req.ProductID != nil {
		item.ProductID = *req.ProductID
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Discount != nil {
		item.Discount = *req.Discount
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update sale item: %w", err)
	}

	updates := map[string]interface{}{
		"product_id": item.ProductID,
		"quantity":   -item.Quantity,
	}
	if err := tx.Model(&movement.InventoryMovement{}).Where("sale_item_id = ?", item.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to adjust movement: %w", err)
	}

	if err := s.recomputeTotal(tx, saleID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit sale item update: %w", err)
	}
	return &item, nil
}

// DeleteItem removes a line item and its movement, then recomputes the
// sale total
func (s *Service) DeleteItem(saleID, itemID uint) error {
	var item SaleItem
	result := s.db.Where("id = ? AND sale_id = ?", itemID, saleID).First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: item %d on sale %d", shared.ErrNotFound, itemID, saleID)
		}
		return fmt.Errorf("failed to find sale item: %w", result.Error)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("sale_item_id = ?", item.ID).Delete(&movement.InventoryMovement{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if err := tx.Delete(&item).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete sale item: %w", err)
	}

	if err := s.recomputeTotal(tx, saleID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// recomputeTotal re-derives total_amount from the live items inside the
// caller's transaction
func (s *Service) recomputeTotal(tx *gorm.DB, saleID uint) error {
	var items []SaleItem
	if err := tx.Where("sale_id = ?", saleID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load items for total: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineAmount())
	}

	if err := tx.Model(&Sale{}).Where("id = ?", saleID).Update("total_amount", total).Error; err != nil {
		return fmt.Errorf("failed to update total_amount: %w", err)
	}
	return nil
}

func validateItemAmounts(unitPrice decimal.Decimal, discount *decimal.Decimal) error {
	if !unitPrice.IsPositive() {
		return fmt.Errorf("%w: unit_price must be positive", shared.ErrValidation)
	}
	if discount != nil && discount.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", shared.ErrValidation)
	}
	return nil
}
