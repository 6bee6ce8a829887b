package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/example/studytrack/pkg/models"
)

// Range tokens accepted by the time-window filter.
const (
	Range7d   = "7d"
	Range30d  = "30d"
	Range90d  = "90d"
	RangeYear = "year"
	RangeAll  = "all"
)

// consistencyWindowDays is the fixed trailing window of the consistency
// score.
const consistencyWindowDays = 30

// peakHourLimit caps the peak-hours view at the busiest hours.
const peakHourLimit = 5

// FilterByRange retains the log entries dated strictly after the range's
// cutoff: now-N days for the day ranges, the start of the current calendar
// year for "year", and no cutoff for "all" (or an unknown token). Entries
// whose date cannot be parsed are kept; they still count toward totals and
// are only excluded from calendar-bucketed views.
func FilterByRange(logs []models.StudyLogEntry, rng string, now time.Time) []models.StudyLogEntry {
	cutoff, bounded := rangeCutoff(rng, now)
	if !bounded {
		return logs
	}
	out := make([]models.StudyLogEntry, 0, len(logs))
	for _, lg := range logs {
		t, err := ParseLogDate(lg.Date)
		if err != nil || t.After(cutoff) {
			out = append(out, lg)
		}
	}
	return out
}

func rangeCutoff(rng string, now time.Time) (time.Time, bool) {
	switch rng {
	case Range7d:
		return now.AddDate(0, 0, -7), true
	case Range30d:
		return now.AddDate(0, 0, -30), true
	case Range90d:
		return now.AddDate(0, 0, -90), true
	case RangeYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// nominalRangeDays is the day count a range token stands for when computing
// the daily average.
func nominalRangeDays(rng string) int {
	switch rng {
	case Range7d:
		return 7
	case Range30d:
		return 30
	case Range90d:
		return 90
	default:
		return 365
	}
}

// trendWindowDays is the number of pre-allocated daily buckets for a range.
// Long ranges use a compressed 15-day window.
func trendWindowDays(rng string) int {
	switch rng {
	case Range7d:
		return 7
	case Range30d:
		return 30
	default:
		return 15
	}
}

// DailyTrend returns one bucket per calendar day for the range's trend
// window, ending today. Filtered logs outside the window are silently
// dropped from the view.
func DailyTrend(filtered []models.StudyLogEntry, rng string, now time.Time) []models.TrendPoint {
	days := trendWindowDays(rng)
	points := make([]models.TrendPoint, days)
	byDay := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := startOfDay(now).AddDate(0, 0, -(days - 1 - i))
		key := dayKey(day)
		points[i] = models.TrendPoint{Date: key, Label: day.Format("Jan 2")}
		byDay[key] = i
	}

	for _, lg := range filtered {
		t, err := ParseLogDate(lg.Date)
		if err != nil {
			continue
		}
		i, ok := byDay[dayKey(t)]
		if !ok {
			continue
		}
		points[i].Hours += float64(lg.DurationMinutes) / 60
		points[i].Sessions++
	}
	for i := range points {
		points[i].Hours = round1(points[i].Hours)
	}
	return points
}

// SubjectDistribution groups the filtered logs by subject and returns the
// accumulated hours sorted descending. Logs without a subject fall under
// "Other".
func SubjectDistribution(filtered []models.StudyLogEntry) []models.SubjectBucket {
	sums := map[string]float64{}
	order := []string{}
	for _, lg := range filtered {
		subject := lg.Subject
		if subject == "" {
			subject = "Other"
		}
		if _, seen := sums[subject]; !seen {
			order = append(order, subject)
		}
		sums[subject] += float64(lg.DurationMinutes) / 60
	}

	buckets := make([]models.SubjectBucket, 0, len(order))
	for _, subject := range order {
		buckets = append(buckets, models.SubjectBucket{Subject: subject, Hours: sums[subject]})
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Hours > buckets[j].Hours })
	for i := range buckets {
		buckets[i].Hours = round1(buckets[i].Hours)
	}
	return buckets
}

// WeeklyComparison sums hours for the week starting at the most recent
// Monday 00:00 and for the Monday-Sunday week before it, over the full
// unfiltered log set. Change is 0 when both weeks are empty and 100 when
// only the previous week is.
func WeeklyComparison(logs []models.StudyLogEntry, now time.Time) models.WeeklyComparison {
	thisStart := startOfWeek(now)
	lastStart := thisStart.AddDate(0, 0, -7)

	var thisWeek, lastWeek float64
	for _, lg := range logs {
		t, err := ParseLogDate(lg.Date)
		if err != nil {
			continue
		}
		h := float64(lg.DurationMinutes) / 60
		switch {
		case !t.Before(thisStart):
			thisWeek += h
		case !t.Before(lastStart):
			lastWeek += h
		}
	}

	change := 0.0
	switch {
	case lastWeek > 0:
		change = (thisWeek - lastWeek) / lastWeek * 100
	case thisWeek > 0:
		change = 100
	}
	return models.WeeklyComparison{
		ThisWeekHours: round1(thisWeek),
		LastWeekHours: round1(lastWeek),
		ChangePercent: math.Round(change),
	}
}

// TotalHours sums the duration of the given logs in hours, rounded to one
// decimal place.
func TotalHours(logs []models.StudyLogEntry) float64 {
	total := 0.0
	for _, lg := range logs {
		total += float64(lg.DurationMinutes) / 60
	}
	return round1(total)
}

// DailyAverage divides the filtered total by the nominal day count of the
// selected range.
func DailyAverage(filtered []models.StudyLogEntry, rng string) float64 {
	total := 0.0
	for _, lg := range filtered {
		total += float64(lg.DurationMinutes) / 60
	}
	return round1(total / float64(nominalRangeDays(rng)))
}

// PeakHours buckets the filtered logs by hour of day and returns the top
// five non-empty buckets by hours descending. Ties keep the earlier hour
// first.
func PeakHours(filtered []models.StudyLogEntry) []models.PeakHourEntry {
	var sums [24]float64
	for _, lg := range filtered {
		t, err := ParseLogDate(lg.Date)
		if err != nil {
			continue
		}
		sums[t.Hour()] += float64(lg.DurationMinutes) / 60
	}

	entries := []models.PeakHourEntry{}
	for hour, h := range sums {
		if h > 0 {
			entries = append(entries, models.PeakHourEntry{Hour: hour, Hours: h})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Hours > entries[j].Hours })
	if len(entries) > peakHourLimit {
		entries = entries[:peakHourLimit]
	}
	for i := range entries {
		entries[i].Hours = round1(entries[i].Hours)
	}
	return entries
}

// ConsistencyScore is the percentage of the trailing 30 calendar days with
// at least one log, computed over the unfiltered log set.
func ConsistencyScore(logs []models.StudyLogEntry, now time.Time) int {
	cutoff := now.AddDate(0, 0, -consistencyWindowDays)
	days := map[string]struct{}{}
	for _, lg := range logs {
		t, err := ParseLogDate(lg.Date)
		if err != nil {
			continue
		}
		if t.After(cutoff) {
			days[dayKey(t)] = struct{}{}
		}
	}
	return roundPercent(float64(len(days)), consistencyWindowDays)
}

// ModeDistribution counts the filtered logs per study mode. Absent or
// unknown modes count as stopwatch.
func ModeDistribution(filtered []models.StudyLogEntry) []models.ModeCount {
	counts := map[string]int{}
	for _, lg := range filtered {
		mode := lg.Mode
		switch mode {
		case models.ModeStopwatch, models.ModePomodoro, models.ModeManual:
		default:
			mode = models.ModeStopwatch
		}
		counts[mode]++
	}

	out := []models.ModeCount{}
	for _, mode := range []string{models.ModeStopwatch, models.ModePomodoro, models.ModeManual} {
		if counts[mode] > 0 {
			out = append(out, models.ModeCount{Mode: mode, Count: counts[mode]})
		}
	}
	return out
}
