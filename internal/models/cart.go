package models

import "time"

// CartLine represents a pending line item in a customer's cart.
// At most one line exists per (user, menu item); re-adding the same
// item overwrites the existing line.
type CartLine struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)"`
	MenuItemID string    `json:"menu_item_id" gorm:"uniqueIndex:idx_cart_user_item;type:varchar(36)"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"` // Catalog price at the time the line was added
	Price      float64   `json:"price"`      // UnitPrice * Quantity
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
