package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/studytrack/pkg/models"
)

// UserStatsRepository handles database operations for per-user counters
type UserStatsRepository struct{}

// NewUserStatsRepository creates a new repository instance
func NewUserStatsRepository() *UserStatsRepository {
	return &UserStatsRepository{}
}

// Get returns the user's stats row, or a zero-valued record when none
// exists yet.
func (r *UserStatsRepository) Get(ctx context.Context, userID int64) (models.UserStats, error) {
	var stats models.UserStats
	query := rebind(`
		SELECT user_id, current_streak, last_study_date, updated_at
		FROM user_stats
		WHERE user_id = ?
	`)
	err := DB.GetContext(ctx, &stats, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return models.UserStats{}, fmt.Errorf("failed to get user stats: %w", err)
	}
	return stats, nil
}

// Upsert replaces the user's stats row.
func (r *UserStatsRepository) Upsert(ctx context.Context, stats *models.UserStats) error {
	query := rebind(`
		INSERT INTO user_stats (user_id, current_streak, last_study_date, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			last_study_date = excluded.last_study_date,
			updated_at = CURRENT_TIMESTAMP
	`)
	_, err := DB.ExecContext(ctx, query,
		stats.UserID,
		stats.CurrentStreak,
		stats.LastStudyDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user stats: %w", err)
	}
	return nil
}
