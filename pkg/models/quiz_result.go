package models

import "time"

// QuizResult tracks the outcome of one topic quiz attempt.
type QuizResult struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Topic          string    `json:"topic" db:"topic"`
	Score          int       `json:"score" db:"score"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
