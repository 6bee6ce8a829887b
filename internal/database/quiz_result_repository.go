package database

import (
	"context"
	"fmt"

	"github.com/example/studytrack/pkg/models"
)

// QuizResultRepository handles database operations for quiz results
type QuizResultRepository struct{}

// NewQuizResultRepository creates a new repository instance
func NewQuizResultRepository() *QuizResultRepository {
	return &QuizResultRepository{}
}

// Create records one quiz attempt.
func (r *QuizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	query := rebind(`
		INSERT INTO quiz_results (user_id, topic, score, total_questions)
		VALUES (?, ?, ?, ?)
	`)
	res, err := DB.ExecContext(ctx, query,
		result.UserID,
		result.Topic,
		result.Score,
		result.TotalQuestions,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}

	id, err := res.LastInsertId()
	if err == nil {
		result.ID = id
	}
	return nil
}

// GetRecentByUser returns the user's most recent quiz results, newest first.
func (r *QuizResultRepository) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]models.QuizResult, error) {
	results := []models.QuizResult{}
	query := rebind(`
		SELECT id, user_id, topic, score, total_questions, created_at
		FROM quiz_results
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	err := DB.SelectContext(ctx, &results, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz results: %w", err)
	}
	return results, nil
}
