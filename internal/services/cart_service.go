package services

import (
	"fmt"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// CartService handles business logic for the customer cart.
type CartService struct {
	cartRepo repositories.CartRepository
	menuRepo repositories.MenuItemRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, menuRepo repositories.MenuItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

// List returns all cart lines owned by the user. No cross-customer visibility.
func (s *CartService) List(userID string) ([]models.CartLine, error) {
	return s.cartRepo.GetByUser(userID)
}

// Add puts a menu item into the user's cart. The line price is computed from
// the current catalog unit price. Re-adding an item the cart already holds
// overwrites the existing line.
func (s *CartService) Add(userID, menuItemID string, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	item, err := s.menuRepo.GetByID(menuItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown menu item %s", apperrors.ErrValidation, menuItemID)
	}

	line := &models.CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price * float64(quantity),
	}
	if err := s.cartRepo.Upsert(line); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	return line, nil
}

// Clear deletes all of the user's cart lines. Idempotent.
func (s *CartService) Clear(userID string) error {
	if err := s.cartRepo.ClearByUser(userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
