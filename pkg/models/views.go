package models

import "time"

// Derived view models. These are recomputed from the raw documents on every
// input change and are never persisted.

// PaperSummary describes one top-level paper of the active syllabus.
type PaperSummary struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	TotalNodeCount     int    `json:"total_node_count"`
	CompletedNodeCount int    `json:"completed_node_count"`
	ProgressPercent    int    `json:"progress_percent"`
}

// TitleIndex maps a lower-cased node title to the id of its enclosing
// top-level paper.
type TitleIndex map[string]string

// PaperHours is the study time attributed to one paper (or the "other"
// bucket) by the log mapper.
type PaperHours struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// TrendPoint is one calendar-day bucket of the daily trend series.
type TrendPoint struct {
	Date     string  `json:"date"`  // YYYY-MM-DD
	Label    string  `json:"label"` // human-readable day label
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
}

// SubjectBucket is the accumulated hours for one subject.
type SubjectBucket struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

// WeeklyComparison compares the current Monday-anchored week against the
// previous one.
type WeeklyComparison struct {
	ThisWeekHours float64 `json:"this_week_hours"`
	LastWeekHours float64 `json:"last_week_hours"`
	ChangePercent float64 `json:"change_percent"`
}

// PeakHourEntry is the accumulated hours for one hour-of-day bucket.
type PeakHourEntry struct {
	Hour  int     `json:"hour"` // 0-23
	Hours float64 `json:"hours"`
}

// ModeCount is the number of sessions logged with one study mode.
type ModeCount struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

// TopicWithStatus is a flattened leaf topic with its computed due status.
type TopicWithStatus struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	ParentSubject    string  `json:"parent_subject"`
	TotalMinutes     int     `json:"total_minutes"`
	LastStudied      *string `json:"last_studied"`
	RevisionInterval int     `json:"revision_interval"`
	NeedsRevision    bool    `json:"needs_revision"` // persisted flag
	Due              bool    `json:"due"`            // computed
}

// TopicGroup is the set of topics sharing one parent subject.
type TopicGroup struct {
	Subject string            `json:"subject"`
	Topics  []TopicWithStatus `json:"topics"`
}

// QuizTopicPerformance aggregates quiz attempts for one topic.
type QuizTopicPerformance struct {
	Topic             string `json:"topic"`
	Attempts          int    `json:"attempts"`
	SumScore          int    `json:"sum_score"`
	SumTotalQuestions int    `json:"sum_total_questions"`
	AccuracyPercent   int    `json:"accuracy_percent"`
}

// Dashboard bundles every derived view the engine exposes to the
// presentation layer and the report exporter.
type Dashboard struct {
	Range            string                 `json:"range"`
	TotalHours       float64                `json:"total_hours"`
	DailyAverage     float64                `json:"daily_average"`
	Papers           []PaperSummary         `json:"papers"`
	PaperHours       []PaperHours           `json:"paper_hours"`
	Trend            []TrendPoint           `json:"trend"`
	Subjects         []SubjectBucket        `json:"subjects"`
	Weekly           WeeklyComparison       `json:"weekly"`
	PeakHours        []PeakHourEntry        `json:"peak_hours"`
	Modes            []ModeCount            `json:"modes"`
	ConsistencyScore int                    `json:"consistency_score"`
	CurrentStreak    int                    `json:"current_streak"`
	TopicGroups      []TopicGroup           `json:"topic_groups"`
	DueCount         int                    `json:"due_count"`
	QuizTopics       []QuizTopicPerformance `json:"quiz_topics"`
	AverageAccuracy  int                    `json:"average_accuracy"`
	GeneratedAt      time.Time              `json:"generated_at"`
}
