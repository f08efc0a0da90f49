package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JournalEntry is a single user-submitted record tagged with a category.
// Deletion is a soft delete; progress queries must exclude deleted rows.
type JournalEntry struct {
	gorm.Model
	UserID     uint `gorm:"index;not null"`
	CategoryID uint `gorm:"index;not null"`
	Title      string
	Content    string
	Mood       string         // optional client-side mood tag
	ImageURLs  datatypes.JSON // array of uploaded image URLs
	IsPublic   bool           `gorm:"default:false"`

	Category Category `gorm:"foreignKey:CategoryID"`
}
