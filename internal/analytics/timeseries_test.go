package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/studytrack/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, June 12 2024. The week anchors at Monday, June 10.
var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func logAt(t time.Time, minutes int) models.StudyLogEntry {
	return models.StudyLogEntry{Date: t.Format(time.RFC3339), DurationMinutes: minutes}
}

func TestFilterByRange(t *testing.T) {
	logs := []models.StudyLogEntry{
		logAt(now.AddDate(0, 0, -1), 60),
		logAt(now.AddDate(0, 0, -10), 60),
		logAt(now.AddDate(0, 0, -40), 60),
	}

	assert.Len(t, FilterByRange(logs, Range7d, now), 1)
	assert.Len(t, FilterByRange(logs, Range30d, now), 2)
	assert.Len(t, FilterByRange(logs, Range90d, now), 3)
	assert.Len(t, FilterByRange(logs, RangeAll, now), 3)
}

func TestFilterByRangeYearCutoff(t *testing.T) {
	logs := []models.StudyLogEntry{
		logAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 60),
		logAt(time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC), 60),
	}
	got := FilterByRange(logs, RangeYear, now)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Date, "2024-01-02")
}

func TestFilterByRangeKeepsUnparseableDates(t *testing.T) {
	logs := []models.StudyLogEntry{{Date: "not-a-date", DurationMinutes: 30}}
	assert.Len(t, FilterByRange(logs, Range7d, now), 1)
}

func TestDailyTrendWindows(t *testing.T) {
	assert.Len(t, DailyTrend(nil, Range7d, now), 7)
	assert.Len(t, DailyTrend(nil, Range30d, now), 30)
	assert.Len(t, DailyTrend(nil, Range90d, now), 15)
	assert.Len(t, DailyTrend(nil, RangeAll, now), 15)
}

func TestDailyTrendBucketsByCalendarDay(t *testing.T) {
	logs := []models.StudyLogEntry{
		logAt(now, 30),
		logAt(now.Add(-2*time.Hour), 30),
		logAt(now.AddDate(0, 0, -1), 90),
		logAt(now.AddDate(0, 0, -20), 60), // outside the 7-day window, silently dropped
	}

	points := DailyTrend(logs, Range7d, now)
	require.Len(t, points, 7)

	today := points[6]
	assert.Equal(t, 1.0, today.Hours)
	assert.Equal(t, 2, today.Sessions)

	yesterday := points[5]
	assert.Equal(t, 1.5, yesterday.Hours)
	assert.Equal(t, 1, yesterday.Sessions)

	var total float64
	for _, p := range points {
		total += p.Hours
	}
	assert.Equal(t, 2.5, total)
}

func TestSubjectDistributionSortsDescending(t *testing.T) {
	logs := []models.StudyLogEntry{
		{Subject: "History", DurationMinutes: 30},
		{Subject: "Polity", DurationMinutes: 120},
		{Subject: "", DurationMinutes: 60},
		{Subject: "History", DurationMinutes: 30},
	}

	got := SubjectDistribution(logs)
	require.Len(t, got, 3)
	assert.Equal(t, models.SubjectBucket{Subject: "Polity", Hours: 2}, got[0])
	assert.Equal(t, models.SubjectBucket{Subject: "History", Hours: 1}, got[1])
	assert.Equal(t, models.SubjectBucket{Subject: "Other", Hours: 1}, got[2])
}

func TestWeeklyComparison(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	logs := []models.StudyLogEntry{
		logAt(monday.Add(9*time.Hour), 120),        // this week
		logAt(monday.AddDate(0, 0, -3), 60),        // last week (Friday)
		logAt(monday.AddDate(0, 0, -7), 60),        // last week (its Monday)
		logAt(monday.AddDate(0, 0, -8), 600),       // two weeks ago, ignored
	}

	got := WeeklyComparison(logs, now)
	assert.Equal(t, 2.0, got.ThisWeekHours)
	assert.Equal(t, 2.0, got.LastWeekHours)
	assert.Equal(t, 0.0, got.ChangePercent)
}

func TestWeeklyComparisonEdgeCases(t *testing.T) {
	// Only this week has hours: change is pinned to 100.
	got := WeeklyComparison([]models.StudyLogEntry{logAt(now, 120)}, now)
	assert.Equal(t, 2.0, got.ThisWeekHours)
	assert.Equal(t, 0.0, got.LastWeekHours)
	assert.Equal(t, 100.0, got.ChangePercent)

	// No hours at all: change is 0, not NaN.
	got = WeeklyComparison(nil, now)
	assert.Equal(t, 0.0, got.ChangePercent)
}

func TestDailyAverage(t *testing.T) {
	logs := []models.StudyLogEntry{
		{DurationMinutes: 420}, // 7 hours
	}
	assert.Equal(t, 1.0, DailyAverage(logs, Range7d))
	assert.Equal(t, 0.2, DailyAverage(logs, Range30d))
	assert.Equal(t, 0.0, DailyAverage(logs, RangeAll)) // 7/365 rounds to 0.0
}

func TestPeakHoursTopFive(t *testing.T) {
	logs := []models.StudyLogEntry{}
	for hour, minutes := range map[int]int{6: 60, 9: 240, 14: 120, 18: 180, 21: 30, 22: 90} {
		d := time.Date(2024, 6, 11, hour, 15, 0, 0, time.UTC)
		logs = append(logs, logAt(d, minutes))
	}

	got := PeakHours(logs)
	require.Len(t, got, 5)
	assert.Equal(t, 9, got[0].Hour)
	assert.Equal(t, 4.0, got[0].Hours)
	for _, p := range got {
		assert.NotEqual(t, 21, p.Hour) // the smallest bucket fell off
	}
}

func TestConsistencyScore(t *testing.T) {
	logs := []models.StudyLogEntry{}
	for i := 0; i < 15; i++ {
		logs = append(logs, logAt(now.AddDate(0, 0, -i), 30))
	}
	// Two logs on the same day still count as one distinct day.
	logs = append(logs, logAt(now.Add(-time.Hour), 30))

	assert.Equal(t, 50, ConsistencyScore(logs, now))
	assert.Equal(t, 0, ConsistencyScore(nil, now))
}

func TestModeDistributionDefaultsToStopwatch(t *testing.T) {
	logs := []models.StudyLogEntry{
		{Mode: models.ModePomodoro},
		{Mode: models.ModePomodoro},
		{Mode: "banana"},
		{Mode: ""},
		{Mode: models.ModeManual},
	}

	got := ModeDistribution(logs)
	require.Len(t, got, 3)
	assert.Equal(t, models.ModeCount{Mode: models.ModeStopwatch, Count: 2}, got[0])
	assert.Equal(t, models.ModeCount{Mode: models.ModePomodoro, Count: 2}, got[1])
	assert.Equal(t, models.ModeCount{Mode: models.ModeManual, Count: 1}, got[2])
}

func TestTotalHours(t *testing.T) {
	logs := []models.StudyLogEntry{{DurationMinutes: 90}, {DurationMinutes: 45}}
	assert.Equal(t, 2.3, TotalHours(logs)) // 2.25 rounds to 2.3
}

func TestParseLogDateLayouts(t *testing.T) {
	for _, s := range []string{"2024-06-12T10:00:00Z", "2024-06-12T10:00:00", "2024-06-12"} {
		_, err := ParseLogDate(s)
		assert.NoError(t, err, fmt.Sprintf("layout %s", s))
	}
	_, err := ParseLogDate("12/06/2024")
	assert.Error(t, err)
}
