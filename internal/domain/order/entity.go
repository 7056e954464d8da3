// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Status represents an order lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod represents how an order will be paid
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
)

// IsValidPaymentMethod reports whether m is a known payment method
func IsValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCashOnDelivery || m == PaymentOnline
}

// Order represents a placed order. Amounts are in store currency units
// and the shipping address is snapshotted at placement time.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNumber string         `gorm:"uniqueIndex;not null;size:32" json:"order_number"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Status      Status         `gorm:"size:20;not null;default:'pending'" json:"status"`
	Payment     PaymentMethod  `gorm:"column:payment_method;size:20;not null" json:"payment_method"`
	Subtotal    int64          `gorm:"not null" json:"subtotal"`
	ShippingFee int64          `gorm:"not null" json:"shipping_fee"`
	TotalAmount int64          `gorm:"not null" json:"total_amount"`
	ShippedAt   *time.Time     `json:"shipped_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	CancelledAt *time.Time     `json:"cancelled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Shipping address snapshot
	ShipFullName     string `gorm:"not null;size:150" json:"ship_full_name"`
	ShipPhone        string `gorm:"not null;size:20" json:"ship_phone"`
	ShipAddressLine1 string `gorm:"not null;size:255" json:"ship_address_line1"`
	ShipAddressLine2 string `gorm:"size:255" json:"ship_address_line2"`
	ShipCity         string `gorm:"not null;size:100" json:"ship_city"`
	ShipState        string `gorm:"size:100" json:"ship_state"`
	ShipPostalCode   string `gorm:"not null;size:20" json:"ship_postal_code"`
	ShipCountry      string `gorm:"not null;size:100" json:"ship_country"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents a single line of an order with price and name
// captured at placement time.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	ProductName string    `gorm:"not null;size:255" json:"product_name"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	LineTotal   int64     `gorm:"not null" json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderStatusHistory records every status change of an order
type OrderStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Status    Status    `gorm:"size:20;not null" json:"status"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// TableName overrides the table name for OrderStatusHistory
func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

// CanBeCancelled reports whether the customer may still cancel the order.
// Only pending orders can be cancelled.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending
}

// ShippingFee computes the shipping charge for a subtotal.
// Orders above the free threshold ship free, everything else pays the flat fee.
func ShippingFee(subtotal, freeThreshold, flatFee int64) int64 {
	if subtotal > freeThreshold {
		return 0
	}
	return flatFee
}
