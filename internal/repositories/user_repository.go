package repositories

import "littlelemon/internal/models"

// UserRepository defines the interface for user and group-membership data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByGroup(groupName string) ([]models.User, error)
	AddToGroup(userID, groupName string) error
	RemoveFromGroup(userID, groupName string) error
}
