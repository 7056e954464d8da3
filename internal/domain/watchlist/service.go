// internal/domain/watchlist/service.go
package watchlist

import (
	"fmt"

	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles watchlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new watchlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ToggleResult reports what a toggle did
type ToggleResult struct {
	ProductID uint `json:"product_id"`
	Added     bool `json:"added"`
}

// Toggle adds the product to the watchlist if absent, removes it if present.
// Toggling twice always leaves the watchlist unchanged.
func (s *Service) Toggle(userID, productID uint) (*ToggleResult, error) {
	var p product.Product
	if err := s.db.Where("is_active = ?", true).First(&p, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	result := &ToggleResult{ProductID: productID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item Item
		findErr := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error

		if findErr == gorm.ErrRecordNotFound {
			result.Added = true
			return tx.Create(&Item{UserID: userID, ProductID: productID}).Error
		}
		if findErr != nil {
			return findErr
		}

		result.Added = false
		return tx.Delete(&item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle watchlist item: %w", err)
	}

	return result, nil
}

// GetWatchlist returns the user's watchlist with product details, newest first
func (s *Service) GetWatchlist(userID uint) ([]Item, error) {
	var items []Item
	err := s.db.Preload("Product").
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve watchlist: %w", err)
	}
	return items, nil
}

// Remove deletes a single product from the watchlist
func (s *Service) Remove(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove watchlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("watchlist item not found")
	}
	return nil
}

// Clear empties the user's watchlist
func (s *Service) Clear(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&Item{}).Error; err != nil {
		return fmt.Errorf("failed to clear watchlist: %w", err)
	}
	return nil
}
