// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/banner"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/cart"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/order"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/upload"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/user"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/watchlist"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migrate runs schema migrations for all domain models
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&user.User{},
		&user.Address{},
		&product.Category{},
		&product.Product{},
		&banner.Banner{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
		&watchlist.Item{},
		&upload.UploadedFile{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("database migrations completed")
	return nil
}

// createIndexes adds indexes AutoMigrate does not cover
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products (category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders (user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_banners_active_order ON banners (is_active, display_order)",
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedInitialData creates the first admin account and, in development,
// a few starter categories. It is a no-op when data already exists.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	if err := seedAdminUser(db, cfg); err != nil {
		return err
	}

	if cfg.IsDevelopment() {
		if err := seedCategories(db); err != nil {
			return err
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&user.User{}).Where("role = ?", user.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordManager := auth.NewPasswordManager(cfg)
	hashed, err := passwordManager.HashPassword("admin123!")
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := user.User{
		Username:   "admin",
		Email:      "admin@example.com",
		Password:   hashed,
		Role:       user.RoleAdmin,
		IsVerified: true,
		IsActive:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("email", admin.Email).Warn("seeded default admin user, change the password immediately")
	return nil
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&product.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []product.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Clothing", Slug: "clothing"},
		{Name: "Home & Kitchen", Slug: "home-kitchen"},
		{Name: "Books", Slug: "books"},
	}

	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	logrus.WithField("count", len(categories)).Info("seeded starter categories")
	return nil
}
