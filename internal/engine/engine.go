package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/studytrack/internal/analytics"
	"github.com/example/studytrack/internal/revision"
	"github.com/example/studytrack/pkg/models"
)

// Store is the external document store the engine reads snapshots from and
// writes rewritten syllabus collections back to.
type Store interface {
	RecentLogs(ctx context.Context, userID int64, limit int) ([]models.StudyLogEntry, error)
	RecentQuizResults(ctx context.Context, userID int64, limit int) ([]models.QuizResult, error)
	UserStats(ctx context.Context, userID int64) (models.UserStats, error)
	SyllabusCollection(ctx context.Context, userID int64) (*models.SyllabusCollection, error)
	SaveSyllabusCollection(ctx context.Context, userID int64, coll *models.SyllabusCollection) error
}

// Config configures an Engine. Zero values take defaults.
type Config struct {
	UserID             int64
	FetchLimit         int    // zero → 500
	Range              string // zero → 30d
	LastUsedSyllabusID string
	Now                func() time.Time // zero → time.Now
}

// Engine holds the latest input snapshots and recomputes every derived view
// synchronously whenever one of them is pushed. Results are memoized: as
// long as no input changes, Dashboard returns the cached computation.
type Engine struct {
	store Store

	mu                 sync.Mutex
	userID             int64
	fetchLimit         int
	rangeToken         string
	lastUsedSyllabusID string
	now                func() time.Time

	logs     []models.StudyLogEntry
	quizzes  []models.QuizResult
	stats    models.UserStats
	syllabus *models.SyllabusCollection

	cached      *models.Dashboard
	subscribers []func(models.Dashboard)
}

// New creates an engine over the given store.
func New(store Store, cfg Config) *Engine {
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 500
	}
	if cfg.Range == "" {
		cfg.Range = analytics.Range30d
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		store:              store,
		userID:             cfg.UserID,
		fetchLimit:         cfg.FetchLimit,
		rangeToken:         cfg.Range,
		lastUsedSyllabusID: cfg.LastUsedSyllabusID,
		now:                cfg.Now,
	}
}

// Subscribe registers a callback invoked with the refreshed dashboard after
// every input push.
func (e *Engine) Subscribe(fn func(models.Dashboard)) {
	e.mu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.mu.Unlock()
}

// PushLogs replaces the log snapshot.
func (e *Engine) PushLogs(logs []models.StudyLogEntry) {
	e.push(func() { e.logs = logs })
}

// PushQuizResults replaces the quiz result snapshot.
func (e *Engine) PushQuizResults(results []models.QuizResult) {
	e.push(func() { e.quizzes = results })
}

// PushUserStats replaces the user stats snapshot.
func (e *Engine) PushUserStats(stats models.UserStats) {
	e.push(func() { e.stats = stats })
}

// PushSyllabus replaces the syllabus collection snapshot.
func (e *Engine) PushSyllabus(coll *models.SyllabusCollection) {
	e.push(func() { e.syllabus = coll })
}

// SetRange switches the selected time range and recomputes.
func (e *Engine) SetRange(rng string) {
	e.push(func() { e.rangeToken = rng })
}

func (e *Engine) push(apply func()) {
	e.mu.Lock()
	apply()
	e.cached = nil
	dash := e.dashboardLocked()
	subs := append(([]func(models.Dashboard))(nil), e.subscribers...)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(dash)
	}
}

// Refresh re-reads every input document from the store and pushes the new
// snapshots.
func (e *Engine) Refresh(ctx context.Context) error {
	logs, err := e.store.RecentLogs(ctx, e.userID, e.fetchLimit)
	if err != nil {
		return fmt.Errorf("failed to load study logs: %w", err)
	}
	quizzes, err := e.store.RecentQuizResults(ctx, e.userID, e.fetchLimit)
	if err != nil {
		return fmt.Errorf("failed to load quiz results: %w", err)
	}
	stats, err := e.store.UserStats(ctx, e.userID)
	if err != nil {
		return fmt.Errorf("failed to load user stats: %w", err)
	}
	coll, err := e.store.SyllabusCollection(ctx, e.userID)
	if err != nil {
		return fmt.Errorf("failed to load syllabus: %w", err)
	}

	e.push(func() {
		e.logs = logs
		e.quizzes = quizzes
		e.stats = stats
		e.syllabus = coll
	})
	return nil
}

// Dashboard returns the derived views for the current snapshots, memoized
// until the next push.
func (e *Engine) Dashboard() models.Dashboard {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dashboardLocked()
}

func (e *Engine) dashboardLocked() models.Dashboard {
	if e.cached != nil {
		return *e.cached
	}
	now := e.now()
	_, active := e.syllabus.Active(e.lastUsedSyllabusID)

	papers, index := analytics.AggregatePapers(active)
	filtered := analytics.FilterByRange(e.logs, e.rangeToken, now)
	flat := revision.Flatten(active, now)

	dash := models.Dashboard{
		Range:            e.rangeToken,
		TotalHours:       analytics.TotalHours(filtered),
		DailyAverage:     analytics.DailyAverage(filtered, e.rangeToken),
		Papers:           papers,
		PaperHours:       analytics.MapLogsToPapers(filtered, papers, index),
		Trend:            analytics.DailyTrend(filtered, e.rangeToken, now),
		Subjects:         analytics.SubjectDistribution(filtered),
		Weekly:           analytics.WeeklyComparison(e.logs, now),
		PeakHours:        analytics.PeakHours(filtered),
		Modes:            analytics.ModeDistribution(filtered),
		ConsistencyScore: analytics.ConsistencyScore(e.logs, now),
		CurrentStreak:    e.stats.CurrentStreak,
		TopicGroups:      revision.Group(flat, revision.FilterAll, ""),
		DueCount:         revision.CountDue(flat),
		QuizTopics:       analytics.QuizPerformance(e.quizzes),
		AverageAccuracy:  analytics.AverageAccuracy(e.quizzes),
		GeneratedAt:      now,
	}
	e.cached = &dash
	return dash
}

// Topics returns the grouped topic list for an explicit filter and search
// term, computed from the current syllabus snapshot.
func (e *Engine) Topics(filter revision.Filter, search string) []models.TopicGroup {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, active := e.syllabus.Active(e.lastUsedSyllabusID)
	return revision.Group(revision.Flatten(active, e.now()), filter, search)
}

// SetInterval rewrites the collection with the topic's revision interval
// changed and saves it. On save failure the previous snapshot stays
// authoritative.
func (e *Engine) SetInterval(ctx context.Context, topicID string, days int) error {
	return e.mutateSyllabus(ctx, func(coll *models.SyllabusCollection) *models.SyllabusCollection {
		return revision.SetInterval(coll, e.lastUsedSyllabusID, topicID, days)
	})
}

// MarkRevised rewrites the collection with the topic marked revised now and
// saves it.
func (e *Engine) MarkRevised(ctx context.Context, topicID string) error {
	return e.mutateSyllabus(ctx, func(coll *models.SyllabusCollection) *models.SyllabusCollection {
		return revision.MarkRevised(coll, e.lastUsedSyllabusID, topicID, e.now())
	})
}

// DeleteTopic rewrites the collection with the topic removed and saves it.
func (e *Engine) DeleteTopic(ctx context.Context, topicID string) error {
	return e.mutateSyllabus(ctx, func(coll *models.SyllabusCollection) *models.SyllabusCollection {
		return revision.DeleteTopic(coll, e.lastUsedSyllabusID, topicID)
	})
}

func (e *Engine) mutateSyllabus(ctx context.Context, rewrite func(*models.SyllabusCollection) *models.SyllabusCollection) error {
	e.mu.Lock()
	current := e.syllabus
	e.mu.Unlock()

	if current == nil {
		return fmt.Errorf("no syllabus loaded")
	}
	rewritten := rewrite(current)
	if err := e.store.SaveSyllabusCollection(ctx, e.userID, rewritten); err != nil {
		// The mutated copy is discarded; the old snapshot remains
		// authoritative until the next successful read.
		return fmt.Errorf("failed to save syllabus: %w", err)
	}
	e.PushSyllabus(rewritten)
	return nil
}
