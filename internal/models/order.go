package models

import "time"

// Order fulfillment statuses.
const (
	StatusPlaced         = "placed"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlaced, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// OrderItem is a frozen snapshot of a cart line, bound permanently to
// the order it was created under. Never updated after creation.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"order_id" gorm:"index;type:varchar(36)"`
	MenuItemID string  `json:"menu_item_id" gorm:"type:varchar(36)"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"` // Price at the time of order
	Price      float64 `json:"price"`
}

// Order represents a customer order created from cart contents at checkout.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string      `json:"user_id" gorm:"index;type:varchar(36)"`
	DeliveryCrewID *string     `json:"delivery_crew_id" gorm:"index;type:varchar(36)"`
	Total          float64     `json:"total"` // Sum of item prices at creation time
	Status         string      `json:"status" gorm:"type:varchar(32)"`
	Date           time.Time   `json:"date"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
