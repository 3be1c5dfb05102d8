// Package model provides data models for the BOT-GPT backend.
package model

import (
	"time"
)

// User represents an account that owns conversations and documents.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Username  string    `json:"username" gorm:"size:100;not null;uniqueIndex:uk_username"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex:uk_email"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
