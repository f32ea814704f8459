package repositories

import (
	"fmt"

	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves all cart lines owned by the given user.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := r.db.Find(&lines, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart lines for user %s: %w", userID, err)
	}
	return lines, nil
}

// Upsert creates the cart line, or overwrites the existing line for the
// same (user, menu item) pair. Last write wins.
func (r *GORMCartRepository) Upsert(line *models.CartLine) error {
	var existing models.CartLine
	err := r.db.First(&existing, "user_id = ? AND menu_item_id = ?", line.UserID, line.MenuItemID).Error
	if err == gorm.ErrRecordNotFound {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		if err := r.db.Create(line).Error; err != nil {
			return fmt.Errorf("failed to create cart line: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up cart line: %w", err)
	}

	line.ID = existing.ID
	line.CreatedAt = existing.CreatedAt
	if err := r.db.Save(line).Error; err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	return nil
}

// ClearByUser deletes all of the user's cart lines. Idempotent: succeeds
// even when the cart is already empty.
func (r *GORMCartRepository) ClearByUser(userID string) error {
	if err := r.db.Delete(&models.CartLine{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
