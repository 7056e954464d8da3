// internal/domain/product/category_service.go
package product

import (
	"fmt"

	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
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

// CreateCategoryRequest represents category creation data
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// UpdateCategoryRequest represents category update data
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// GetCategories retrieves all categories ordered by name
func (s *CategoryService) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(categoryID uint) (*Category, error) {
	var category Category
	result := s.db.First(&category, categoryID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("category not found")
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", result.Error)
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*Category, error) {
	var existing Category
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("category with this name already exists")
	}

	category := Category{
		Name:  req.Name,
		Slug:  generateSlug(req.Name),
		Image: req.Image,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(categoryID uint, req *UpdateCategoryRequest) (*Category, error) {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		var existing Category
		if err := s.db.Where("name = ? AND id <> ?", *req.Name, categoryID).First(&existing).Error; err == nil {
			return nil, fmt.Errorf("category with this name already exists")
		}
		updates["name"] = *req.Name
		updates["slug"] = generateSlug(*req.Name)
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return s.GetCategory(categoryID)
}

// DeleteCategory removes a category that has no products
func (s *CategoryService) DeleteCategory(categoryID uint) error {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&Product{}).Where("category_id = ?", categoryID).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check category products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("cannot delete category with existing products")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
