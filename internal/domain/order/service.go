// internal/domain/order/service.go
package order

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/cart"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/user"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db           *gorm.DB
	config       *config.Config
	emailService *email.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, emailService *email.Service) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		emailService: emailService,
	}
}

// CreateOrderRequest represents order placement data
type CreateOrderRequest struct {
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
	UserID uint   `form:"user_id"`
}

// OrderListResponse represents paginated orders
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder places an order from the user's current cart. The whole
// placement runs in one transaction: stock is re-checked and decremented,
// prices are re-read, the cart is cleared.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateOrderRequest) (*Order, error) {
	payment := PaymentMethod(req.PaymentMethod)
	if !IsValidPaymentMethod(payment) {
		return nil, fmt.Errorf("invalid payment method: %s", req.PaymentMethod)
	}

	// Shipping address must belong to the ordering user
	var address user.Address
	result := s.db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("address not found")
		}
		return nil, fmt.Errorf("failed to retrieve address: %w", result.Error)
	}

	orderNumber, err := generateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	var order Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []cart.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return fmt.Errorf("cart is empty")
		}

		var subtotal int64
		orderItems := make([]OrderItem, 0, len(cartItems))

		for _, item := range cartItems {
			// Re-read price and stock under the transaction
			var p product.Product
			if err := tx.Where("is_active = ?", true).First(&p, item.ProductID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("product %d is no longer available", item.ProductID)
				}
				return fmt.Errorf("failed to load product: %w", err)
			}

			if p.Quantity < item.Quantity {
				return fmt.Errorf("insufficient stock for %s: only %d available", p.Name, p.Quantity)
			}

			unit := p.DiscountedPrice()
			lineTotal := unit * int64(item.Quantity)
			subtotal += lineTotal

			orderItems = append(orderItems, OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   unit,
				Quantity:    item.Quantity,
				LineTotal:   lineTotal,
			})

			// Guarded decrement so concurrent orders cannot oversell
			res := tx.Model(&product.Product{}).
				Where("id = ? AND quantity >= ?", p.ID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to update stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for %s", p.Name)
			}
		}

		shippingFee := ShippingFee(subtotal, s.config.Shipping.FreeThreshold, s.config.Shipping.FlatFee)

		order = Order{
			OrderNumber:      orderNumber,
			UserID:           userID,
			Status:           StatusPending,
			Payment:          payment,
			Subtotal:         subtotal,
			ShippingFee:      shippingFee,
			TotalAmount:      subtotal + shippingFee,
			ShipFullName:     address.FullName,
			ShipPhone:        address.Phone,
			ShipAddressLine1: address.AddressLine1,
			ShipAddressLine2: address.AddressLine2,
			ShipCity:         address.City,
			ShipState:        address.State,
			ShipPostalCode:   address.PostalCode,
			ShipCountry:      address.Country,
			Items:            orderItems,
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		history := OrderStatusHistory{
			OrderID: order.ID,
			Status:  StatusPending,
			Note:    "order placed",
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		// The cart is consumed by the order
		if err := tx.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(ctx, userID, &order)

	return s.GetOrder(order.ID)
}

// sendConfirmationEmail notifies the customer; delivery failure never
// fails the already-committed order.
func (s *Service) sendConfirmationEmail(ctx context.Context, userID uint, o *Order) {
	var u user.User
	if err := s.db.First(&u, userID).Error; err != nil {
		return
	}

	err := s.emailService.SendOrderConfirmation(ctx, u.Email, u.Username, &email.OrderSummary{
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
	})
	if err != nil {
		logrus.WithError(err).WithField("order_number", o.OrderNumber).Warn("failed to send order confirmation email")
	}
}

// GetOrder retrieves an order with items and status history
func (s *Service) GetOrder(orderID uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, orderID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// GetUserOrder retrieves an order owned by the given user
func (s *Service) GetUserOrder(userID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order not found")
	}
	return order, nil
}

// GetUserOrders retrieves the orders of a single user, newest first
func (s *Service) GetUserOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	req.UserID = userID
	return s.GetOrders(req)
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{})
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.Status != "" {
		if !IsValidStatus(Status(req.Status)) {
			return nil, fmt.Errorf("invalid status filter: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// CancelOrder cancels a pending order and restores the reserved stock
func (s *Service) CancelOrder(userID, orderID uint) (*Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order not found")
			}
			return fmt.Errorf("failed to retrieve order: %w", err)
		}

		if !order.CanBeCancelled() {
			return fmt.Errorf("order cannot be cancelled in status %s", order.Status)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		// Stock reserved at placement goes back on the shelf
		for _, item := range order.Items {
			err := tx.Model(&product.Product{}).
				Where("id = ?", item.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}

		history := OrderStatusHistory{
			OrderID: order.ID,
			Status:  StatusCancelled,
			Note:    "cancelled by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// UpdateOrderStatus changes an order status (admin). The new status must be
// a valid status different from the current one; cancelling restores stock.
func (s *Service) UpdateOrderStatus(orderID uint, req *UpdateStatusRequest) (*Order, error) {
	if !IsValidStatus(req.Status) {
		return nil, fmt.Errorf("invalid status: %s", req.Status)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order not found")
			}
			return fmt.Errorf("failed to retrieve order: %w", err)
		}

		if order.Status == req.Status {
			return fmt.Errorf("order is already %s", order.Status)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": req.Status}
		switch req.Status {
		case StatusShipped:
			updates["shipped_at"] = now
		case StatusDelivered:
			updates["delivered_at"] = now
		case StatusCancelled:
			updates["cancelled_at"] = now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		if req.Status == StatusCancelled {
			for _, item := range order.Items {
				err := tx.Model(&product.Product{}).
					Where("id = ?", item.ProductID).
					Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
				if err != nil {
					return fmt.Errorf("failed to restore stock: %w", err)
				}
			}
		}

		history := OrderStatusHistory{
			OrderID: order.ID,
			Status:  req.Status,
			Note:    req.Note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// generateOrderNumber builds a unique human-readable order number
func generateOrderNumber() (string, error) {
	suffix := make([]byte, 6)
	const charset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		suffix[i] = charset[n.Int64()]
	}

	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), string(suffix)), nil
}
