package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	JournalID uint `gorm:"index;not null"`
	UserID    uint `gorm:"not null"`
	UserName  string
	UserImage string
	Text      string `gorm:"not null"`
}
