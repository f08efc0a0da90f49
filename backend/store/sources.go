// Package store wraps the row queries the dashboard computation reads from.
// The interfaces exist so controllers can be exercised with fakes; the GORM
// implementations are what main wires in.
package store

import (
	"time"

	"gorm.io/gorm"

	"thinkhabit/backend/models"
)

// JournalSource is the read side of the journal table. GORM's soft-delete
// scope keeps deleted entries out of every query here.
type JournalSource interface {
	// EntryTimesForCategory returns creation timestamps of the user's entries
	// in one category within [from, to).
	EntryTimesForCategory(userID, categoryID uint, from, to time.Time) ([]time.Time, error)
	// AllEntryTimes returns creation timestamps of all the user's entries.
	AllEntryTimes(userID uint) ([]time.Time, error)
	RecentEntries(userID uint, limit int) ([]models.JournalEntry, error)
	CountEntries(userID uint) (int64, error)
}

// AssignmentSource is the read side of the assignment table.
type AssignmentSource interface {
	ActiveAssignments(userID uint) ([]models.Assignment, error)
}

type GormJournalSource struct {
	DB *gorm.DB
}

func NewGormJournalSource(db *gorm.DB) *GormJournalSource {
	return &GormJournalSource{DB: db}
}

func (s *GormJournalSource) EntryTimesForCategory(userID, categoryID uint, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.DB.Model(&models.JournalEntry{}).
		Where("user_id = ? AND category_id = ? AND created_at >= ? AND created_at < ?",
			userID, categoryID, from, to).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (s *GormJournalSource) AllEntryTimes(userID uint) ([]time.Time, error) {
	var times []time.Time
	err := s.DB.Model(&models.JournalEntry{}).
		Where("user_id = ?", userID).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (s *GormJournalSource) RecentEntries(userID uint, limit int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.DB.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormJournalSource) CountEntries(userID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

type GormAssignmentSource struct {
	DB *gorm.DB
}

func NewGormAssignmentSource(db *gorm.DB) *GormAssignmentSource {
	return &GormAssignmentSource{DB: db}
}

func (s *GormAssignmentSource) ActiveAssignments(userID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.DB.Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
