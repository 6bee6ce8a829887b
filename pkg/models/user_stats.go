package models

import "time"

// UserStats holds per-user counters maintained by the logging frontend.
type UserStats struct {
	UserID        int64     `json:"user_id" db:"user_id"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LastStudyDate string    `json:"last_study_date" db:"last_study_date"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
