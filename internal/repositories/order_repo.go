package repositories

import (
	"littlelemon/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByDeliveryCrew(crewID string) ([]models.Order, error)
	GetItemsByUser(userID string) ([]models.OrderItem, error)
	// CreateFromCart persists the order with its items and clears the owning
	// user's cart in a single transaction. Any failure rolls back everything.
	CreateFromCart(order *models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
}
