package repositories

import (
	"fmt"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username, with group memberships.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Groups").First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user with username %s", apperrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Groups").First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID, with group memberships.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Groups").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user with ID %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByGroup retrieves all users belonging to the named group.
func (r *GORMUserRepository) GetByGroup(groupName string) ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Groups").
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ?", groupName).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users in group %s: %w", groupName, err)
	}
	return users, nil
}

// AddToGroup adds the user to the named group. Adding an existing member is a no-op.
func (r *GORMUserRepository) AddToGroup(userID, groupName string) error {
	user, err := r.GetByID(userID)
	if err != nil {
		return err
	}
	if user.InGroup(groupName) {
		return nil
	}
	var group models.Group
	if err := r.db.First(&group, "name = ?", groupName).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: group %s", apperrors.ErrNotFound, groupName)
		}
		return fmt.Errorf("failed to get group %s: %w", groupName, err)
	}
	if err := r.db.Model(user).Association("Groups").Append(&group); err != nil {
		return fmt.Errorf("failed to add user %s to group %s: %w", userID, groupName, err)
	}
	return nil
}

// RemoveFromGroup removes the user from the named group.
func (r *GORMUserRepository) RemoveFromGroup(userID, groupName string) error {
	user, err := r.GetByID(userID)
	if err != nil {
		return err
	}
	var group models.Group
	if err := r.db.First(&group, "name = ?", groupName).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: group %s", apperrors.ErrNotFound, groupName)
		}
		return fmt.Errorf("failed to get group %s: %w", groupName, err)
	}
	if err := r.db.Model(user).Association("Groups").Delete(&group); err != nil {
		return fmt.Errorf("failed to remove user %s from group %s: %w", userID, groupName, err)
	}
	return nil
}
