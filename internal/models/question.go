package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Question is an interview question stored in PostgreSQL. Questions come from
// seeding or from the AI generation endpoint.
type Question struct {
	// ID is the unique identifier for the question (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// Title is the short headline shown in question lists.
	Title string `gorm:"type:text;not null" json:"title"`
	// Description is the full problem statement.
	Description string `gorm:"type:text;not null" json:"description"`
	// Topic groups questions for browsing (e.g. "arrays", "graphs").
	Topic string `gorm:"type:text;not null;index" json:"topic"`
	// Difficulty is one of "Easy", "Medium", "Hard".
	Difficulty string `gorm:"type:text;not null;index" json:"difficulty"`
	// Examples holds sample input/output pairs as free-form text.
	Examples pq.StringArray `gorm:"type:text[]" json:"examples"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate generates a UUID for the question if none is set.
func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return
}
