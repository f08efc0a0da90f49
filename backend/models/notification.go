package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationComment    = "comment"
	NotificationAssignment = "assignment"
	NotificationSystem     = "system"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	Type    string `gorm:"not null"` // comment, assignment, system
	Title   string
	Message string
	Payload datatypes.JSON // type-specific references (journal ID, comment ID, ...)
	IsRead  bool           `gorm:"default:false"`
}
