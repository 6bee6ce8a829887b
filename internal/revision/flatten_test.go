package revision

import (
	"testing"
	"time"

	"github.com/example/studytrack/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func rfc3339DaysAgo(days int) *string {
	s := now.AddDate(0, 0, -days).Format(time.RFC3339)
	return &s
}

func historySyllabus() *models.Syllabus {
	return &models.Syllabus{
		Items: []*models.SyllabusNode{
			{
				ID:    "P1",
				Title: "History",
				Children: []*models.SyllabusNode{
					{ID: "T1", Title: "Ancient", Stats: &models.TopicStats{
						RevisionInterval: 7,
						LastStudied:      rfc3339DaysAgo(9),
					}},
					{ID: "T2", Title: "Medieval"},
				},
			},
		},
	}
}

func TestFlattenComputesDueStatus(t *testing.T) {
	topics := Flatten(historySyllabus(), now)
	require.Len(t, topics, 2)

	ancient := topics[0]
	assert.Equal(t, "T1", ancient.ID)
	assert.Equal(t, "History", ancient.ParentSubject)
	assert.True(t, ancient.Due, "studied 9 days ago with a 7 day interval")

	medieval := topics[1]
	assert.Equal(t, "T2", medieval.ID)
	assert.False(t, medieval.Due, "never studied topics are not due by elapsed time")
	assert.Equal(t, models.DefaultRevisionInterval, medieval.RevisionInterval)
}

func TestFlattenParentSubjects(t *testing.T) {
	s := &models.Syllabus{
		Items: []*models.SyllabusNode{
			{ID: "L1", Title: "Floating Topic"}, // top-level leaf
			{ID: "P1", Title: "Science", Children: []*models.SyllabusNode{
				{ID: "G1", Title: "Physics", Children: []*models.SyllabusNode{
					{ID: "T1", Title: "Optics"},
				}},
			}},
		},
	}

	topics := Flatten(s, now)
	require.Len(t, topics, 2)
	assert.Equal(t, DefaultParentSubject, topics[0].ParentSubject)
	// Nearest ancestor, not the top-level paper.
	assert.Equal(t, "Physics", topics[1].ParentSubject)
}

func TestFlattenIsIdempotent(t *testing.T) {
	s := historySyllabus()
	first := Flatten(s, now)
	second := Flatten(s, now)
	assert.Equal(t, first, second)
	assert.Equal(t, Group(first, FilterDue, ""), Group(second, FilterDue, ""))
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil, now))
	assert.Empty(t, Flatten(&models.Syllabus{}, now))
}

func TestIsDue(t *testing.T) {
	assert.False(t, IsDue(nil, now))

	// The persisted flag alone forces due, even when never studied.
	assert.True(t, IsDue(&models.TopicStats{NeedsRevision: true}, now))

	// Never studied without the flag: never due.
	assert.False(t, IsDue(&models.TopicStats{RevisionInterval: 1}, now))

	// Exactly at the interval boundary counts as due.
	assert.True(t, IsDue(&models.TopicStats{
		RevisionInterval: 7,
		LastStudied:      rfc3339DaysAgo(7),
	}, now))

	assert.False(t, IsDue(&models.TopicStats{
		RevisionInterval: 7,
		LastStudied:      rfc3339DaysAgo(6),
	}, now))

	// Zero interval falls back to the default rather than always-due.
	assert.False(t, IsDue(&models.TopicStats{
		LastStudied: rfc3339DaysAgo(6),
	}, now))
}

func TestGroupFilters(t *testing.T) {
	topics := []models.TopicWithStatus{
		{ID: "T1", Title: "Ancient", ParentSubject: "History", TotalMinutes: 60, Due: true},
		{ID: "T2", Title: "Medieval", ParentSubject: "History", TotalMinutes: 30},
		{ID: "T3", Title: "Constitution", ParentSubject: "Polity"},
	}

	all := Group(topics, FilterAll, "")
	require.Len(t, all, 2)
	assert.Equal(t, "History", all[0].Subject)
	assert.Len(t, all[0].Topics, 2)

	due := Group(topics, FilterDue, "")
	require.Len(t, due, 1)
	require.Len(t, due[0].Topics, 1)
	assert.Equal(t, "T1", due[0].Topics[0].ID)

	// Active: studied but not due.
	active := Group(topics, FilterActive, "")
	require.Len(t, active, 1)
	require.Len(t, active[0].Topics, 1)
	assert.Equal(t, "T2", active[0].Topics[0].ID)
}

func TestGroupSearchMatchesTitleAndSubject(t *testing.T) {
	topics := []models.TopicWithStatus{
		{ID: "T1", Title: "Ancient", ParentSubject: "History"},
		{ID: "T2", Title: "Constitution", ParentSubject: "Polity"},
	}

	byTitle := Group(topics, FilterAll, "anci")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "T1", byTitle[0].Topics[0].ID)

	bySubject := Group(topics, FilterAll, "POLITY")
	require.Len(t, bySubject, 1)
	assert.Equal(t, "T2", bySubject[0].Topics[0].ID)

	assert.Empty(t, Group(topics, FilterAll, "chemistry"))
}

func TestCountDue(t *testing.T) {
	topics := []models.TopicWithStatus{{Due: true}, {}, {Due: true}}
	assert.Equal(t, 2, CountDue(topics))
}
