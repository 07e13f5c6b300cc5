// internal/domain/movement/service.go
package movement

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/shared"
)

// Service handles inventory movement queries. Movements are written by the
// stock-in and sale services; here only the movement type tag can be changed.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new movement service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListFilter narrows the movement log
type ListFilter struct {
	ProductID    *uint  `form:"product_id"`
	MovementType string `form:"movement_type"`
}

// UpdateRequest allows retagging a movement's type
type UpdateRequest struct {
	MovementType Type `json:"movement_type" binding:"required"`
}

// List retrieves movements newest first, optionally filtered by product
// and type
func (s *Service) List(filter *ListFilter) ([]InventoryMovement, error) {
	query := s.db.Model(&InventoryMovement{})

	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.MovementType != "" {
		t := Type(strings.ToUpper(filter.MovementType))
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: movement_type must be one of OPENING, STOCK_IN, SALE", shared.ErrValidation)
		}
		query = query.Where("movement_type = ?", t)
	}

	var movements []InventoryMovement
	if err := query.Order("movement_date DESC, id DESC").Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve movements: %w", err)
	}
	if len(movements) == 0 {
		return nil, fmt.Errorf("%w: no inventory movements", shared.ErrEmptyResult)
	}
	return movements, nil
}

// Get retrieves a single movement by ID
func (s *Service) Get(id uint) (*InventoryMovement, error) {
	var mv InventoryMovement
	result := s.db.Where("id = ?", id).First(&mv)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: movement %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve movement: %w", result.Error)
	}
	return &mv, nil
}

// UpdateType retags a movement. Quantity, product, and source links are
// owned by the originating receipt or sale and stay immutable here.
func (s *Service) UpdateType(id uint, req *UpdateRequest) (*InventoryMovement, error) {
	if !req.MovementType.IsValid() {
		return nil, fmt.Errorf("%w: movement_type must be one of OPENING, STOCK_IN, SALE", shared.ErrValidation)
	}

	mv, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(mv).Update("movement_type", req.MovementType).Error; err != nil {
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}
	return mv, nil
}
