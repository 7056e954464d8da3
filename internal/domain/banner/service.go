// internal/domain/banner/service.go
package banner

import (
	"fmt"

	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles banner business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new banner service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateBannerRequest represents banner creation data
type CreateBannerRequest struct {
	Title     string `json:"title" binding:"required"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image" binding:"required"`
	TargetURL string `json:"target_url"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateBannerRequest represents banner update data
type UpdateBannerRequest struct {
	Title        *string `json:"title"`
	Subtitle     *string `json:"subtitle"`
	Image        *string `json:"image"`
	TargetURL    *string `json:"target_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// GetActiveBanners retrieves active banners in display order
func (s *Service) GetActiveBanners() ([]Banner, error) {
	var banners []Banner
	err := s.db.Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&banners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve banners: %w", err)
	}
	return banners, nil
}

// GetBanners retrieves all banners including inactive ones
func (s *Service) GetBanners() ([]Banner, error) {
	var banners []Banner
	if err := s.db.Order("display_order ASC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve banners: %w", err)
	}
	return banners, nil
}

// GetBanner retrieves a banner by ID
func (s *Service) GetBanner(bannerID uint) (*Banner, error) {
	var banner Banner
	result := s.db.First(&banner, bannerID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("banner not found")
		}
		return nil, fmt.Errorf("failed to retrieve banner: %w", result.Error)
	}
	return &banner, nil
}

// CreateBanner creates a new banner at the end of the display order
func (s *Service) CreateBanner(req *CreateBannerRequest) (*Banner, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	banner := Banner{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Image:     req.Image,
		TargetURL: req.TargetURL,
		IsActive:  isActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// New banners are appended after the current last position
		var maxOrder int
		row := tx.Model(&Banner{}).Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		banner.DisplayOrder = maxOrder + 1

		return tx.Create(&banner).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	return &banner, nil
}

// UpdateBanner updates an existing banner
func (s *Service) UpdateBanner(bannerID uint, req *UpdateBannerRequest) (*Banner, error) {
	banner, err := s.GetBanner(bannerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.TargetURL != nil {
		updates["target_url"] = *req.TargetURL
	}
	if req.DisplayOrder != nil {
		if *req.DisplayOrder < 1 {
			return nil, fmt.Errorf("display order must be positive")
		}
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(banner).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update banner: %w", err)
		}
	}

	return s.GetBanner(bannerID)
}

// DeleteBanner removes a banner and renumbers the remaining ones
// so display order stays a contiguous 1..n sequence.
func (s *Service) DeleteBanner(bannerID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Banner{}, bannerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("banner not found")
		}

		return s.renumber(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return nil
}

func (s *Service) renumber(tx *gorm.DB) error {
	var banners []Banner
	if err := tx.Order("display_order ASC, id ASC").Find(&banners).Error; err != nil {
		return err
	}

	for i := range banners {
		want := i + 1
		if banners[i].DisplayOrder != want {
			if err := tx.Model(&banners[i]).Update("display_order", want).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
