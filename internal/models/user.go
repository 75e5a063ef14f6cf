package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the system. Accounts are lightweight: a user is
// created the first time a display name requests a session token.
type User struct {
	ID        string `gorm:"primaryKey" json:"id"` // UUID
	Name      string `gorm:"not null" json:"name"`
	CreatedAt time.Time
}

// BeforeCreate is a GORM hook that runs before a record is inserted.
// It generates a new UUID for the user if the ID is not already set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
