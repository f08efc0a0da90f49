package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string // empty for OAuth-only accounts
	Role         string `gorm:"default:user"` // user, admin
	DisplayName  string
	AvatarURL    string
	GoogleSub    string `gorm:"index"` // Google account subject, set on OAuth login
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
	Provider  string // "password" or "google"
}
