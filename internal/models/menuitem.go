package models

import "gorm.io/gorm"

// MenuItem represents an item on the restaurant menu.
type MenuItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Featured   bool    `json:"featured"`
	Category   string  `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
