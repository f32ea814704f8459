package models

import "gorm.io/gorm"

// Group names used for role membership.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

// Group represents a role group a user can belong to.
type Group struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
}

// User represents a user of the restaurant backend.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string  `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Groups     []Group `json:"groups" gorm:"many2many:user_groups;"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// InGroup reports whether the user is a member of the named group.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
