package services

import (
	"fmt"

	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// Role is the closed set of roles a caller can act under. A user belongs to
// exactly one role per request: group membership decides Manager and
// DeliveryCrew; everyone else is a Customer.
type Role int

const (
	RoleCustomer Role = iota
	RoleManager
	RoleDeliveryCrew
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeliveryCrew:
		return "delivery_crew"
	default:
		return "customer"
	}
}

// Caller identifies an authenticated request principal with its resolved role.
type Caller struct {
	UserID   string
	Username string
	Role     Role
}

// RoleResolver resolves a user's role from group membership. Pure lookup,
// no state mutation.
type RoleResolver struct {
	userRepo repositories.UserRepository
}

// NewRoleResolver creates a new RoleResolver.
func NewRoleResolver(userRepo repositories.UserRepository) *RoleResolver {
	return &RoleResolver{
		userRepo: userRepo,
	}
}

// Resolve returns the role of the given user. Manager membership takes
// precedence over Delivery Crew when a user is in both groups.
func (r *RoleResolver) Resolve(userID string) (Role, error) {
	user, err := r.userRepo.GetByID(userID)
	if err != nil {
		return RoleCustomer, fmt.Errorf("failed to resolve role: %w", err)
	}
	if user.InGroup(models.GroupManager) {
		return RoleManager, nil
	}
	if user.InGroup(models.GroupDeliveryCrew) {
		return RoleDeliveryCrew, nil
	}
	return RoleCustomer, nil
}
