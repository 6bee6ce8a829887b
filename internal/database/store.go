package database

import (
	"context"

	"github.com/example/studytrack/pkg/models"
)

// Store bundles the repositories behind the read/write surface the
// aggregation engine consumes.
type Store struct {
	logs     *StudyLogRepository
	quizzes  *QuizResultRepository
	stats    *UserStatsRepository
	syllabus *SyllabusRepository
}

// NewStore creates a store over the package connection.
func NewStore() *Store {
	return &Store{
		logs:     NewStudyLogRepository(),
		quizzes:  NewQuizResultRepository(),
		stats:    NewUserStatsRepository(),
		syllabus: NewSyllabusRepository(),
	}
}

// RecentLogs returns the user's most recent study logs.
func (s *Store) RecentLogs(ctx context.Context, userID int64, limit int) ([]models.StudyLogEntry, error) {
	return s.logs.GetRecentByUser(ctx, userID, limit)
}

// RecentQuizResults returns the user's most recent quiz results.
func (s *Store) RecentQuizResults(ctx context.Context, userID int64, limit int) ([]models.QuizResult, error) {
	return s.quizzes.GetRecentByUser(ctx, userID, limit)
}

// UserStats returns the user's counters.
func (s *Store) UserStats(ctx context.Context, userID int64) (models.UserStats, error) {
	return s.stats.Get(ctx, userID)
}

// SyllabusCollection returns the user's syllabus document, nil if absent.
func (s *Store) SyllabusCollection(ctx context.Context, userID int64) (*models.SyllabusCollection, error) {
	return s.syllabus.Get(ctx, userID)
}

// SaveSyllabusCollection replaces the user's syllabus document.
func (s *Store) SaveSyllabusCollection(ctx context.Context, userID int64, coll *models.SyllabusCollection) error {
	return s.syllabus.Save(ctx, userID, coll)
}
