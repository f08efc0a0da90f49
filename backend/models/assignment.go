package models

import "gorm.io/gorm"

// DefaultWeeklyGoal is used when an assignment carries no explicit goal.
const DefaultWeeklyGoal = 3

// Assignment enrolls a student in a category with a weekly journaling goal.
// Revoking an assignment deactivates it; rows are never deleted.
type Assignment struct {
	gorm.Model
	UserID     uint `gorm:"index;not null"`
	CategoryID uint `gorm:"index;not null"`
	AssignedBy uint // admin user ID
	WeeklyGoal int  `gorm:"default:3"`
	Note       string
	IsActive   bool `gorm:"default:true"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

// EffectiveGoal guards the progress computation against a zero target.
func (a Assignment) EffectiveGoal() int {
	if a.WeeklyGoal <= 0 {
		return DefaultWeeklyGoal
	}
	return a.WeeklyGoal
}
