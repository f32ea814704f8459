package services

import (
	"fmt"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// MenuService handles business logic for the menu catalog. Reads are open to
// any authenticated caller; writes are manager only.
type MenuService struct {
	repo repositories.MenuItemRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuItemRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetAll retrieves all menu items.
func (s *MenuService) GetAll() ([]models.MenuItem, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single menu item by its ID.
func (s *MenuService) GetByID(id string) (*models.MenuItem, error) {
	return s.repo.GetByID(id)
}

// Create adds a new menu item. Manager only.
func (s *MenuService) Create(caller Caller, item *models.MenuItem) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can create menu items", apperrors.ErrForbidden)
	}
	return s.repo.Create(item)
}

// Update updates an existing menu item. Manager only.
func (s *MenuService) Update(caller Caller, item *models.MenuItem) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can update menu items", apperrors.ErrForbidden)
	}
	return s.repo.Update(item)
}

// Delete deletes a menu item by its ID. Manager only.
func (s *MenuService) Delete(caller Caller, id string) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can delete menu items", apperrors.ErrForbidden)
	}
	return s.repo.Delete(id)
}
