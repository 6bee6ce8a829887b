package models

import "time"

// Study modes a log entry can be recorded with.
const (
	ModeStopwatch = "stopwatch"
	ModePomodoro  = "pomodoro"
	ModeManual    = "manual"
)

// StudyLogEntry represents a single logged study session.
// Entries are append-only and owned by the store; the engine only reads them.
type StudyLogEntry struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	Date            string    `json:"date" db:"date"` // RFC3339 or YYYY-MM-DD
	Subject         string    `json:"subject" db:"subject"`
	Topic           string    `json:"topic" db:"topic"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Mode            string    `json:"mode" db:"mode"` // stopwatch, pomodoro or manual
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
