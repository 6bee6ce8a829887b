package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/studytrack/pkg/models"
)

// SyllabusRepository persists each user's syllabus collection as a single
// JSON document. Every save replaces the whole document; concurrent writers
// resolve by last write wins.
type SyllabusRepository struct{}

// NewSyllabusRepository creates a new repository instance
func NewSyllabusRepository() *SyllabusRepository {
	return &SyllabusRepository{}
}

// Get returns the user's syllabus collection, or nil when none has been
// saved yet.
func (r *SyllabusRepository) Get(ctx context.Context, userID int64) (*models.SyllabusCollection, error) {
	var doc string
	query := rebind("SELECT doc FROM syllabus_docs WHERE user_id = ?")
	err := DB.GetContext(ctx, &doc, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get syllabus document: %w", err)
	}

	var coll models.SyllabusCollection
	if err := json.Unmarshal([]byte(doc), &coll); err != nil {
		return nil, fmt.Errorf("failed to decode syllabus document: %w", err)
	}
	return &coll, nil
}

// Save replaces the user's syllabus document with the given collection.
func (r *SyllabusRepository) Save(ctx context.Context, userID int64, coll *models.SyllabusCollection) error {
	if coll == nil {
		return fmt.Errorf("cannot save a nil syllabus collection")
	}
	doc, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("failed to encode syllabus document: %w", err)
	}

	query := rebind(`
		INSERT INTO syllabus_docs (user_id, doc, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			doc = excluded.doc,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.ExecContext(ctx, query, userID, string(doc)); err != nil {
		return fmt.Errorf("failed to save syllabus document: %w", err)
	}
	return nil
}
