package database

import (
	"context"
	"fmt"

	"github.com/example/studytrack/pkg/models"
)

// StudyLogRepository handles database operations for study logs
type StudyLogRepository struct{}

// NewStudyLogRepository creates a new repository instance
func NewStudyLogRepository() *StudyLogRepository {
	return &StudyLogRepository{}
}

// Create appends a new log entry. Logs are append-only; there is no update.
func (r *StudyLogRepository) Create(ctx context.Context, entry *models.StudyLogEntry) error {
	query := rebind(`
		INSERT INTO study_logs (user_id, date, subject, topic, duration_minutes, mode)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	result, err := DB.ExecContext(ctx, query,
		entry.UserID,
		entry.Date,
		entry.Subject,
		entry.Topic,
		entry.DurationMinutes,
		entry.Mode,
	)
	if err != nil {
		return fmt.Errorf("failed to create study log: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	return nil
}

// GetRecentByUser returns the user's most recent log entries, newest first.
func (r *StudyLogRepository) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]models.StudyLogEntry, error) {
	logs := []models.StudyLogEntry{}
	query := rebind(`
		SELECT id, user_id, date, subject, topic, duration_minutes, mode, created_at
		FROM study_logs
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
		LIMIT ?
	`)
	err := DB.SelectContext(ctx, &logs, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get study logs: %w", err)
	}
	return logs, nil
}

// CountByUser returns how many log entries the user has.
func (r *StudyLogRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, rebind("SELECT COUNT(*) FROM study_logs WHERE user_id = ?"), userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count study logs: %w", err)
	}
	return count, nil
}
