package analytics

import (
	"math"
	"time"
)

// Layouts accepted for log dates. Frontends have historically written both
// full RFC3339 timestamps and bare calendar days.
var logDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseLogDate parses a log entry's date string.
func ParseLogDate(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range logDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// dayKey buckets a timestamp into its calendar day.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// startOfDay truncates a timestamp to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Monday 00:00 at or before t.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	return d.AddDate(0, 0, -offset)
}

// round1 rounds to one decimal place for presentation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundPercent rounds a ratio to a whole percentage.
func roundPercent(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(num / den * 100))
}
