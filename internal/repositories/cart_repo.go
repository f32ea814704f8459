package repositories

import "littlelemon/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartLine, error)
	Upsert(line *models.CartLine) error
	ClearByUser(userID string) error
}
