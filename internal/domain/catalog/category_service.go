// internal/domain/catalog/category_service.go
package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/shared"
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CategoryUpdateRequest represents category update data (full update)
type CategoryUpdateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// GetCategories retrieves all categories sorted by ID
func (s *CategoryService) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", shared.ErrEmptyResult)
	}
	return categories, nil
}

// GetCategory retrieves a single category by ID
func (s *CategoryService) GetCategory(id uint) (*Category, error) {
	var category Category
	result := s.db.Where("id = ?", id).First(&category)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", result.Error)
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	// Check if name already exists
	var existing Category
	if result := s.db.Where("name = ?", req.Name).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: category name '%s' already in use", shared.ErrDuplicateName, req.Name)
	}

	category := Category{Name: req.Name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// UpdateCategory renames an existing category. Renaming a category to its own
// current name is a no-op and succeeds.
func (s *CategoryService) UpdateCategory(id uint, req *CategoryUpdateRequest) (*Category, error) {
	var category Category
	result := s.db.Where("id = ?", id).First(&category)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find category: %w", result.Error)
	}

	// The new name must not collide with a different category
	var existing Category
	if result := s.db.Where("name = ? AND id <> ?", req.Name, id).First(&existing); result.Error == nil {
		return nil, fmt.Errorf("%w: category name '%s' already in use", shared.ErrDuplicateName, req.Name)
	}

	category.Name = req.Name
	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &category, nil
}

// DeleteCategory deletes a category. Deletion is blocked while products still
// reference the category.
func (s *CategoryService) DeleteCategory(id uint) error {
	var productCount int64
	s.db.Model(&Product{}).Where("category_id = ?", id).Count(&productCount)
	if productCount > 0 {
		return fmt.Errorf("%w: category %d is referenced by %d product(s)", shared.ErrConflict, id, productCount)
	}

	result := s.db.Where("id = ?", id).Delete(&Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: category %d", shared.ErrNotFound, id)
	}
	return nil
}
