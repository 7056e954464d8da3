// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"gorm.io/gorm"
)

// sessionCartTTL bounds how long an abandoned guest cart survives in Redis
const sessionCartTTL = 24 * time.Hour

// Service handles cart business logic for both logged-in users and guests
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a quantity change; zero removes the line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// GetUserCart returns the cart of a logged-in user with fresh prices
func (s *Service) GetUserCart(userID uint) (*Cart, error) {
	var items []CartItem
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	lines := make([]SessionCartItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, SessionCartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return s.priceLines(lines)
}

// AddToUserCart adds a product to a user cart, merging into an existing line
func (s *Service) AddToUserCart(userID uint, req *AddItemRequest) (*Cart, error) {
	p, err := s.getSellableProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var item CartItem
		result := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item)

		newQuantity := req.Quantity
		if result.Error == nil {
			newQuantity += item.Quantity
		} else if result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}

		if newQuantity > p.Quantity {
			return fmt.Errorf("insufficient stock: only %d available", p.Quantity)
		}

		if result.Error == gorm.ErrRecordNotFound {
			return tx.Create(&CartItem{
				UserID:    userID,
				ProductID: req.ProductID,
				Quantity:  newQuantity,
			}).Error
		}
		return tx.Model(&item).Update("quantity", newQuantity).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserCart(userID)
}

// UpdateUserCartItem sets the quantity of a cart line; zero removes it
func (s *Service) UpdateUserCartItem(userID, productID uint, quantity int) (*Cart, error) {
	if quantity == 0 {
		if err := s.RemoveFromUserCart(userID, productID); err != nil {
			return nil, err
		}
		return s.GetUserCart(userID)
	}

	p, err := s.getSellableProduct(productID)
	if err != nil {
		return nil, err
	}
	if quantity > p.Quantity {
		return nil, fmt.Errorf("insufficient stock: only %d available", p.Quantity)
	}

	result := s.db.Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("cart item not found")
	}

	return s.GetUserCart(userID)
}

// RemoveFromUserCart removes a product line from a user cart
func (s *Service) RemoveFromUserCart(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

// ClearUserCart removes every line from a user cart
func (s *Service) ClearUserCart(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetSessionCart returns a guest cart; a new session is created when
// sessionID is empty. The returned session ID must be echoed back to the client.
func (s *Service) GetSessionCart(ctx context.Context, sessionID string) (*Cart, string, error) {
	sc, sid, err := s.loadSessionCart(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	cart, err := s.priceLines(sc.Items)
	if err != nil {
		return nil, "", err
	}
	return cart, sid, nil
}

// AddToSessionCart adds a product to a guest cart
func (s *Service) AddToSessionCart(ctx context.Context, sessionID string, req *AddItemRequest) (*Cart, string, error) {
	p, err := s.getSellableProduct(req.ProductID)
	if err != nil {
		return nil, "", err
	}

	sc, sid, err := s.loadSessionCart(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	found := false
	for i := range sc.Items {
		if sc.Items[i].ProductID == req.ProductID {
			newQuantity := sc.Items[i].Quantity + req.Quantity
			if newQuantity > p.Quantity {
				return nil, "", fmt.Errorf("insufficient stock: only %d available", p.Quantity)
			}
			sc.Items[i].Quantity = newQuantity
			found = true
			break
		}
	}
	if !found {
		if req.Quantity > p.Quantity {
			return nil, "", fmt.Errorf("insufficient stock: only %d available", p.Quantity)
		}
		sc.Items = append(sc.Items, SessionCartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	}

	if err := s.saveSessionCart(ctx, sc); err != nil {
		return nil, "", err
	}

	cart, err := s.priceLines(sc.Items)
	if err != nil {
		return nil, "", err
	}
	return cart, sid, nil
}

// UpdateSessionCartItem sets a guest cart line quantity; zero removes it
func (s *Service) UpdateSessionCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (*Cart, string, error) {
	sc, sid, err := s.loadSessionCart(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	idx := -1
	for i := range sc.Items {
		if sc.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, "", fmt.Errorf("cart item not found")
	}

	if quantity == 0 {
		sc.Items = append(sc.Items[:idx], sc.Items[idx+1:]...)
	} else {
		p, err := s.getSellableProduct(productID)
		if err != nil {
			return nil, "", err
		}
		if quantity > p.Quantity {
			return nil, "", fmt.Errorf("insufficient stock: only %d available", p.Quantity)
		}
		sc.Items[idx].Quantity = quantity
	}

	if err := s.saveSessionCart(ctx, sc); err != nil {
		return nil, "", err
	}

	cart, err := s.priceLines(sc.Items)
	if err != nil {
		return nil, "", err
	}
	return cart, sid, nil
}

// RemoveFromSessionCart removes a line from a guest cart
func (s *Service) RemoveFromSessionCart(ctx context.Context, sessionID string, productID uint) (*Cart, string, error) {
	return s.UpdateSessionCartItem(ctx, sessionID, productID, 0)
}

// ClearSessionCart removes a guest cart entirely
func (s *Service) ClearSessionCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.redisClient.Del(ctx, sessionCartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session cart: %w", err)
	}
	return nil
}

// MergeSessionCartToUser folds a guest cart into the user cart at login.
// Quantities for the same product are summed, capped at available stock.
func (s *Service) MergeSessionCartToUser(ctx context.Context, sessionID string, userID uint) error {
	if sessionID == "" {
		return nil
	}

	data, err := s.redisClient.Get(ctx, sessionCartKey(sessionID)).Result()
	if err == redis.Nil {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to load session cart: %w", err)
	}

	var sc SessionCart
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return fmt.Errorf("failed to decode session cart: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range sc.Items {
			var p product.Product
			if err := tx.Where("is_active = ?", true).First(&p, line.ProductID).Error; err != nil {
				// Products removed since the guest added them are dropped silently
				continue
			}

			var item CartItem
			result := tx.Where("user_id = ? AND product_id = ?", userID, line.ProductID).First(&item)

			quantity := line.Quantity
			if result.Error == nil {
				quantity += item.Quantity
			} else if result.Error != gorm.ErrRecordNotFound {
				return result.Error
			}
			if quantity > p.Quantity {
				quantity = p.Quantity
			}
			if quantity <= 0 {
				continue
			}

			if result.Error == gorm.ErrRecordNotFound {
				if err := tx.Create(&CartItem{UserID: userID, ProductID: line.ProductID, Quantity: quantity}).Error; err != nil {
					return err
				}
			} else if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to merge session cart: %w", err)
	}

	s.redisClient.Del(ctx, sessionCartKey(sessionID))
	return nil
}

func (s *Service) loadSessionCart(ctx context.Context, sessionID string) (*SessionCart, string, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
		return &SessionCart{SessionID: sessionID}, sessionID, nil
	}

	data, err := s.redisClient.Get(ctx, sessionCartKey(sessionID)).Result()
	if err == redis.Nil {
		return &SessionCart{SessionID: sessionID}, sessionID, nil
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to load session cart: %w", err)
	}

	var sc SessionCart
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, "", fmt.Errorf("failed to decode session cart: %w", err)
	}
	sc.SessionID = sessionID
	return &sc, sessionID, nil
}

func (s *Service) saveSessionCart(ctx context.Context, sc *SessionCart) error {
	sc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionCartKey(sc.SessionID), data, sessionCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session cart: %w", err)
	}
	return nil
}

// priceLines loads current product data and prices each line.
// Inactive or deleted products are excluded from the result.
func (s *Service) priceLines(items []SessionCartItem) (*Cart, error) {
	lines := make([]Line, 0, len(items))

	if len(items) > 0 {
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		var products []product.Product
		err := s.db.Preload("Category").Where("id IN ? AND is_active = ?", ids, true).Find(&products).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load cart products: %w", err)
		}

		byID := make(map[uint]*product.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		for _, item := range items {
			p, ok := byID[item.ProductID]
			if !ok {
				continue
			}
			unit := p.DiscountedPrice()
			lines = append(lines, Line{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unit,
				LineTotal: unit * int64(item.Quantity),
				Product:   p,
			})
		}
	}

	return &Cart{
		Items:  lines,
		Totals: CalculateTotals(lines),
	}, nil
}

func (s *Service) getSellableProduct(productID uint) (*product.Product, error) {
	var p product.Product
	result := s.db.Where("is_active = ?", true).First(&p, productID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &p, nil
}

func sessionCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
