package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/studytrack/internal/revision"
	"github.com/example/studytrack/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Store with a switchable save failure.
type fakeStore struct {
	logs     []models.StudyLogEntry
	quizzes  []models.QuizResult
	stats    models.UserStats
	syllabus *models.SyllabusCollection
	failSave bool
	saves    int
}

func (f *fakeStore) RecentLogs(_ context.Context, _ int64, _ int) ([]models.StudyLogEntry, error) {
	return f.logs, nil
}

func (f *fakeStore) RecentQuizResults(_ context.Context, _ int64, _ int) ([]models.QuizResult, error) {
	return f.quizzes, nil
}

func (f *fakeStore) UserStats(_ context.Context, _ int64) (models.UserStats, error) {
	return f.stats, nil
}

func (f *fakeStore) SyllabusCollection(_ context.Context, _ int64) (*models.SyllabusCollection, error) {
	return f.syllabus, nil
}

func (f *fakeStore) SaveSyllabusCollection(_ context.Context, _ int64, coll *models.SyllabusCollection) error {
	if f.failSave {
		return errors.New("store unavailable")
	}
	f.saves++
	f.syllabus = coll
	return nil
}

func testStore() *fakeStore {
	nineDaysAgo := now.AddDate(0, 0, -9).Format(time.RFC3339)
	return &fakeStore{
		logs: []models.StudyLogEntry{
			{Date: now.AddDate(0, 0, -1).Format(time.RFC3339), Subject: "History", DurationMinutes: 90, Mode: models.ModeStopwatch},
		},
		quizzes: []models.QuizResult{{Topic: "Polity", Score: 8, TotalQuestions: 10}},
		stats:   models.UserStats{CurrentStreak: 4},
		syllabus: &models.SyllabusCollection{
			Syllabi: map[string]*models.Syllabus{
				"main": {
					Items: []*models.SyllabusNode{
						{ID: "P1", Title: "History", Children: []*models.SyllabusNode{
							{ID: "T1", Title: "Ancient", Stats: &models.TopicStats{
								RevisionInterval: 7,
								LastStudied:      &nineDaysAgo,
							}},
						}},
					},
				},
			},
			SyllabusIDs:      []string{"main"},
			ActiveSyllabusID: "main",
		},
	}
}

func testEngine(store *fakeStore) *Engine {
	return New(store, Config{UserID: 1, Now: func() time.Time { return now }})
}

func TestRefreshBuildsDashboard(t *testing.T) {
	eng := testEngine(testStore())
	require.NoError(t, eng.Refresh(context.Background()))

	dash := eng.Dashboard()
	assert.Equal(t, 1.5, dash.TotalHours)
	assert.Equal(t, 4, dash.CurrentStreak)
	assert.Equal(t, 1, dash.DueCount)
	require.Len(t, dash.PaperHours, 1)
	assert.Equal(t, "P1", dash.PaperHours[0].ID)
	require.Len(t, dash.QuizTopics, 1)
	assert.Equal(t, 80, dash.QuizTopics[0].AccuracyPercent)
}

func TestDashboardIsMemoized(t *testing.T) {
	eng := testEngine(testStore())
	require.NoError(t, eng.Refresh(context.Background()))

	first := eng.Dashboard()
	second := eng.Dashboard()
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)

	// A push invalidates the cache.
	eng.PushLogs(nil)
	assert.Equal(t, 0.0, eng.Dashboard().TotalHours)
}

func TestSubscribersNotifiedOnPush(t *testing.T) {
	eng := testEngine(testStore())
	var got []models.Dashboard
	eng.Subscribe(func(d models.Dashboard) { got = append(got, d) })

	eng.PushLogs([]models.StudyLogEntry{{Date: now.Format(time.RFC3339), DurationMinutes: 60}})
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].TotalHours)
}

func TestMarkRevisedPersistsAndPushes(t *testing.T) {
	store := testStore()
	eng := testEngine(store)
	require.NoError(t, eng.Refresh(context.Background()))
	require.Equal(t, 1, eng.Dashboard().DueCount)

	require.NoError(t, eng.MarkRevised(context.Background(), "T1"))
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 0, eng.Dashboard().DueCount)
}

func TestMutationSaveFailureKeepsOldSnapshot(t *testing.T) {
	store := testStore()
	eng := testEngine(store)
	require.NoError(t, eng.Refresh(context.Background()))

	store.failSave = true
	err := eng.MarkRevised(context.Background(), "T1")
	require.Error(t, err)

	// The previous snapshot stays authoritative: the topic is still due.
	assert.Equal(t, 1, eng.Dashboard().DueCount)
	assert.Equal(t, 0, store.saves)
}

func TestDeleteTopicRoundTrip(t *testing.T) {
	store := testStore()
	eng := testEngine(store)
	require.NoError(t, eng.Refresh(context.Background()))

	require.NoError(t, eng.DeleteTopic(context.Background(), "T1"))
	for _, g := range eng.Topics(revision.FilterAll, "") {
		for _, topic := range g.Topics {
			assert.NotEqual(t, "T1", topic.ID)
		}
	}
}

func TestSetRangeRecomputes(t *testing.T) {
	store := testStore()
	store.logs = append(store.logs, models.StudyLogEntry{
		Date: now.AddDate(0, 0, -20).Format(time.RFC3339), Subject: "History", DurationMinutes: 60,
	})
	eng := testEngine(store)
	require.NoError(t, eng.Refresh(context.Background()))
	assert.Equal(t, 2.5, eng.Dashboard().TotalHours)

	eng.SetRange("7d")
	assert.Equal(t, 1.5, eng.Dashboard().TotalHours)
}

func TestEmptyStoreYieldsEmptyDashboard(t *testing.T) {
	eng := testEngine(&fakeStore{})
	require.NoError(t, eng.Refresh(context.Background()))

	dash := eng.Dashboard()
	assert.Equal(t, 0.0, dash.TotalHours)
	assert.Empty(t, dash.Papers)
	assert.Empty(t, dash.TopicGroups)
	assert.Equal(t, 0, dash.AverageAccuracy)
	assert.Equal(t, 0, dash.ConsistencyScore)
	assert.Len(t, dash.Trend, 30) // buckets are pre-allocated even with no data
}
