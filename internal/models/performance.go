package models

import "gorm.io/gorm"

// PerformanceRecord captures one practice attempt by a user. The embedded
// gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields.
type PerformanceRecord struct {
	gorm.Model

	// UserID is the account that made the attempt.
	UserID string `gorm:"type:text;not null;index" json:"userId"`
	// QuestionID references the question that was attempted.
	QuestionID string `gorm:"type:text;not null;index" json:"questionId"`
	// TimeTakenSeconds is how long the attempt ran.
	TimeTakenSeconds int `json:"timeTakenSeconds"`
	// Completed reports whether the user finished the question.
	Completed bool `json:"completed"`
}
