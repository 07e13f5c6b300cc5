// internal/domain/catalog/product_service.go
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/shared"
)

// ProductService handles product business logic
type ProductService struct {
	db     *gorm.DB
	config *config.Config
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB, cfg *config.Config) *ProductService {
	return &ProductService{
		db:     db,
		config: cfg,
	}
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	CategoryID   *uint           `json:"category_id"`
	SKU          *string         `json:"sku" binding:"omitempty,max=100"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	ReorderLevel *int            `json:"reorder_level" binding:"omitempty,gte=0"`
}

// ProductUpdateRequest represents partial product update data; only supplied
// fields are applied
type ProductUpdateRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=255"`
	CategoryID   *uint            `json:"category_id"`
	SKU          *string          `json:"sku" binding:"omitempty,max=100"`
	Price        *decimal.Decimal `json:"price"`
	ReorderLevel *int             `json:"reorder_level" binding:"omitempty,gte=0"`
}

// GetProducts retrieves all products sorted by ID
func (s *ProductService) GetProducts() ([]Product, error) {
	var products []Product
	if err := s.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products", shared.ErrEmptyResult)
	}
	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *ProductService) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.Preload("Category").Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", shared.ErrValidation)
	}

	// Validate the optional category reference
	if req.CategoryID != nil {
		var category Category
		if result := s.db.Where("id = ?", *req.CategoryID).First(&category); result.Error != nil {
			return nil, fmt.Errorf("%w: category %d", shared.ErrInvalidReference, *req.CategoryID)
		}
	}

	// Check SKU uniqueness when present
	if req.SKU != nil && *req.SKU != "" {
		var existing Product
		if result := s.db.Where("sku = ?", *req.SKU).First(&existing); result.Error == nil {
			return nil, fmt.Errorf("%w: sku '%s' already in use", shared.ErrDuplicateSKU, *req.SKU)
		}
	}

	product := Product{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		SKU:          req.SKU,
		Price:        req.Price,
		ReorderLevel: 10,
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// Load the category relationship for the response
	s.db.Preload("Category").First(&product, product.ID)

	return &product, nil
}

// UpdateProduct partially updates an existing product, re-validating any
// changed category reference or SKU
func (s *ProductService) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	// Validate category reference if being updated
	if req.CategoryID != nil {
		var category Category
		if result := s.db.Where("id = ?", *req.CategoryID).First(&category); result.Error != nil {
			return nil, fmt.Errorf("%w: category %d", shared.ErrInvalidReference, *req.CategoryID)
		}
	}

	// Validate SKU uniqueness against other products if being updated
	if req.SKU != nil && *req.SKU != "" {
		var existing Product
		if result := s.db.Where("sku = ? AND id <> ?", *req.SKU, id).First(&existing); result.Error == nil {
			return nil, fmt.Errorf("%w: sku '%s' already in use", shared.ErrDuplicateSKU, *req.SKU)
		}
	}

	if req.Price != nil && !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", shared.ErrValidation)
	}

	// Apply only supplied fields
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Category").First(&product, product.ID)

	return &product, nil
}

// DeleteProduct deletes a product. Deletion is blocked while ledger rows
// still reference the product, so the movement log stays replayable.
func (s *ProductService) DeleteProduct(id uint) error {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
		}
		return fmt.Errorf("failed to find product: %w", result.Error)
	}

	var movementCount int64
	s.db.Table("inventory_movements").Where("product_id = ?", id).Count(&movementCount)
	if movementCount > 0 {
		return fmt.Errorf("%w: product %d has %d recorded movement(s)", shared.ErrConflict, id, movementCount)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
