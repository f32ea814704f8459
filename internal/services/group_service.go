package services

import (
	"fmt"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// GroupService manages role group membership. All operations are manager only.
type GroupService struct {
	userRepo repositories.UserRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(userRepo repositories.UserRepository) *GroupService {
	return &GroupService{
		userRepo: userRepo,
	}
}

// Members lists the users belonging to the named group.
func (s *GroupService) Members(caller Caller, groupName string) ([]models.User, error) {
	if caller.Role != RoleManager {
		return nil, fmt.Errorf("%w: only managers can list group members", apperrors.ErrForbidden)
	}
	return s.userRepo.GetByGroup(groupName)
}

// Add puts the user with the given username into the named group.
func (s *GroupService) Add(caller Caller, groupName, username string) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can manage group members", apperrors.ErrForbidden)
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.userRepo.AddToGroup(user.ID, groupName)
}

// Remove takes the user with the given username out of the named group.
func (s *GroupService) Remove(caller Caller, groupName, username string) error {
	if caller.Role != RoleManager {
		return fmt.Errorf("%w: only managers can manage group members", apperrors.ErrForbidden)
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.userRepo.RemoveFromGroup(user.ID, groupName)
}
