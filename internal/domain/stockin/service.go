// internal/domain/stockin/service.go
package stockin

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

// Service handles stock-in ledger business logic. Every item mutation runs in
// one transaction that also adjusts the matching inventory movement and
// recomputes the receipt total, so the movement log never drifts from the
// live items.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new stock-in service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ItemRequest represents one line item on a new stock-in receipt
type ItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreateRequest represents stock-in receipt creation data
type CreateRequest struct {
	RefNo       *string       `json:"ref_no" binding:"omitempty,max=100"`
	StockInDate *time.Time    `json:"stock_in_date"`
	Notes       *string       `json:"notes"`
	Items       []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateHeaderRequest represents a partial update of receipt header fields;
// items are managed through the item endpoints
type UpdateHeaderRequest struct {
	RefNo       *string    `json:"ref_no" binding:"omitempty,max=100"`
	StockInDate *time.Time `json:"stock_in_date"`
	Notes       *string    `json:"notes"`
}

// ItemUpdateRequest represents a partial update of a single line item
type ItemUpdateRequest struct {
	ProductID *uint            `json:"product_id"`
	Quantity  *int             `json:"quantity" binding:"omitempty,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// Create records a new stock-in receipt with its items and one STOCK_IN
// movement per item. The whole create is atomic: a single invalid product
// aborts everything.
func (s *Service) Create(req *CreateRequest) (*StockIn, error) {
	for _, item := range req.Items {
		if !item.UnitCost.IsPositive() {
			return nil, fmt.Errorf("%w: unit_cost must be greater than zero", shared.ErrValidation)
		}
	}
	// Reject the same product twice in one payload
	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, fmt.Errorf("%w: product %d appears twice in this receipt", shared.ErrDuplicateLineItem, item.ProductID)
		}
		seen[item.ProductID] = true
	}

	stockInDate := time.Now()
	if req.StockInDate != nil {
		stockInDate = *req.StockInDate
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Validate every product before touching any table
	for _, item := range req.Items {
		var product catalog.Product
		if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, item.ProductID)
		}
	}

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	stockIn := StockIn{
		RefNo:       req.RefNo,
		StockInDate: stockInDate,
		Notes:       req.Notes,
		TotalCost:   total,
	}
	if err := tx.Create(&stockIn).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create stock-in receipt: %w", err)
	}

	for _, item := range req.Items {
		record := StockInItem{
			StockInID: stockIn.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create stock-in item: %w", err)
		}

		unitCost := record.UnitCost
		mv := movement.InventoryMovement{
			ProductID:     record.ProductID,
			MovementType:  movement.TypeStockIn,
			Quantity:      record.Quantity,
			UnitCost:      &unitCost,
			StockInItemID: &record.ID,
			MovementDate:  stockInDate,
		}
		if err := tx.Create(&mv).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record movement: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit stock-in receipt: %w", err)
	}

	s.db.Preload("Items").First(&stockIn, stockIn.ID)
	return &stockIn, nil
}

// List retrieves all stock-in receipts with their items, newest first
func (s *Service) List() ([]StockIn, error) {
	var stockIns []StockIn
	if err := s.db.Preload("Items").Order("stock_in_date DESC").Find(&stockIns).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock-in receipts: %w", err)
	}
	if len(stockIns) == 0 {
		return nil, fmt.Errorf("%w: no stock-in receipts", shared.ErrEmptyResult)
	}
	return stockIns, nil
}

// Get retrieves a single stock-in receipt by ID with all items
func (s *Service) Get(id uint) (*StockIn, error) {
	var stockIn StockIn
	result := s.db.Preload("Items").Where("id = ?", id).First(&stockIn)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: stock-in receipt %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve stock-in receipt: %w", result.Error)
	}
	return &stockIn, nil
}

// UpdateHeader partially updates a receipt's header fields (not items)
func (s *Service) UpdateHeader(id uint, req *UpdateHeaderRequest) (*StockIn, error) {
	var stockIn StockIn
	result := s.db.Where("id = ?", id).First(&stockIn)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: stock-in receipt %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find stock-in receipt: %w", result.Error)
	}

	updates := make(map[string]interface{})
	if req.RefNo != nil {
		updates["ref_no"] = *req.RefNo
	}
	if req.StockInDate != nil {
		updates["stock_in_date"] = *req.StockInDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(&stockIn).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update stock-in receipt: %w", err)
		}
	}

	s.db.Preload("Items").First(&stockIn, stockIn.ID)
	return &stockIn, nil
}

// Delete removes a receipt, all its items, and the movements those items
// produced, in one transaction
func (s *Service) Delete(id uint) error {
	var stockIn StockIn
	result := s.db.Preload("Items").Where("id = ?", id).First(&stockIn)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: stock-in receipt %d", shared.ErrNotFound, id)
		}
		return fmt.Errorf("failed to find stock-in receipt: %w", result.Error)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	itemIDs := make([]uint, 0, len(stockIn.Items))
	for _, item := range stockIn.Items {
		itemIDs = append(itemIDs, item.ID)
	}

	if len(itemIDs) > 0 {
		if err := tx.Where("stock_in_item_id IN ?", itemIDs).Delete(&movement.InventoryMovement{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete movements: %w", err)
		}
		if err := tx.Where("stock_in_id = ?", id).Delete(&StockInItem{}).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete stock-in items: %w", err)
		}
	}

	if err := tx.Delete(&stockIn).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete stock-in receipt: %w", err)
	}

	return tx.Commit().Error
}

// ListItems retrieves the items of one receipt
func (s *Service) ListItems(stockInID uint) ([]StockInItem, error) {
	if _, err := s.Get(stockInID); err != nil {
		return nil, err
	}
	var items []StockInItem
	if err := s.db.Where("stock_in_id = ?", stockInID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock-in items: %w", err)
	}
	return items, nil
}

// AddItem adds a new line item to an existing receipt, appends its movement,
// and recomputes the receipt total
func (s *Service) AddItem(stockInID uint, req *ItemRequest) (*StockInItem, error) {
	if !req.UnitCost.IsPositive() {
		return nil, fmt.Errorf("%w: unit_cost must be greater than zero", shared.ErrValidation)
	}

	var stockIn StockIn
	if err := s.db.Where("id = ?", stockInID).First(&stockIn).Error; err != nil {
		return nil, fmt.Errorf("%w: stock-in receipt %d", shared.ErrNotFound, stockInID)
	}

	var product catalog.Product
	if err := s.db.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, req.ProductID)
	}

	// The same product may appear only once per receipt
	var existing StockInItem
	if result := s.db.Where("stock_in_id = ? AND product_id = ?", stockInID, req.ProductID).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: product %d is already on receipt %d", shared.ErrDuplicateLineItem, req.ProductID, stockInID)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item := StockInItem{
		StockInID: stockInID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
	}
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create stock-in item: %w", err)
	}

	unitCost := item.UnitCost
	mv := movement.InventoryMovement{
		ProductID:     item.ProductID,
		MovementType:  movement.TypeStockIn,
		Quantity:      item.Quantity,
		UnitCost:      &unitCost,
		StockInItemID: &item.ID,
		MovementDate:  stockIn.StockInDate,
	}
	if err := tx.Create(&mv).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	if err := s.recomputeTotal(tx, stockInID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit stock-in item: %w", err)
	}
	return &item, nil
}

// UpdateItem partially updates a line item, adjusts its movement, and
// recomputes the receipt total
func (s *Service) UpdateItem(stockInID, itemID uint, req *ItemUpdateRequest) (*StockInItem, error) {
	var item StockInItem
	result := s.db.Where("id = ? AND stock_in_id = ?", itemID, stockInID).First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: item %d on receipt %d", shared.ErrNotFound, itemID, stockInID)
		}
		return nil, fmt.Errorf("failed to find stock-in item: %w", result.Error)
	}

	if req.ProductID != nil {
		var product catalog.Product
		if err := s.db.Where("id = ?", *req.ProductID).First(&product).Error; err != nil {
			return nil, fmt.Errorf("%w: product %d", shared.ErrInvalidReference, *req.ProductID)
		}
		var existing StockInItem
		if result := s.db.Where("stock_in_id = ? AND product_id = ? AND id <> ?", stockInID, *req.ProductID, itemID).First(&existing); result.Error == nil {
			return nil, fmt.Errorf("%w: product %d is already on receipt %d", shared.ErrDuplicateLineItem, *req.ProductID, stockInID)
		}
	}
	if req.UnitCost != nil && !req.UnitCost.IsPositive() {
		return nil, fmt.Errorf("%w: unit_cost must be greater than zero", shared.ErrValidation)
	}

	if req.ProductID != nil {
		item.ProductID = *req.ProductID
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update stock-in item: %w", err)
	}

	// Keep the movement in lockstep with the item
	unitCost := item.UnitCost
	updates := map[string]interface{}{
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
		"unit_cost":  unitCost,
	}
	if err := tx.Model(&movement.InventoryMovement{}).Where("stock_in_item_id = ?", item.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to adjust movement: %w", err)
	}

	if err := s.recomputeTotal(tx, stockInID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit stock-in item update: %w", err)
	}
	return &item, nil
}

// DeleteItem removes a line item and its movement, then recomputes the
// receipt total
func (s *Service) DeleteItem(stockInID, itemID uint) error {
	var item StockInItem
	result := s.db.Where("id = ? AND stock_in_id = ?", itemID, stockInID).First(&item)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: item %d on receipt %d", shared.ErrNotFound, itemID, stockInID)
		}
		return fmt.Errorf("failed to find stock-in item: %w", result.Error)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("stock_in_item_id = ?", item.ID).Delete(&movement.InventoryMovement{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if err := tx.Delete(&item).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete stock-in item: %w", err)
	}

	if err := s.recomputeTotal(tx, stockInID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// recomputeTotal re-derives total_cost from the live items inside the caller's
// transaction
func (s *Service) recomputeTotal(tx *gorm.DB, stockInID uint) error {
	var items []StockInItem
	if err := tx.Where("stock_in_id = ?", stockInID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load items for total: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineCost())
	}

	if err := tx.Model(&StockIn{}).Where("id = ?", stockInID).Update("total_cost", total).Error; err != nil {
		return fmt.Errorf("failed to update total_cost: %w", err)
	}
	return nil
}
