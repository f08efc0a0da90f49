package models

import "gorm.io/gorm"

// Category is a habit area users journal against (e.g. "perfectionism").
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Color       string // hex color for the client
	IconURL     string
	IsActive    bool `gorm:"default:true"`
}
