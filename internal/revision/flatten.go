package revision

import (
	"strings"
	"time"

	"github.com/example/studytrack/pkg/models"
)

// DefaultParentSubject labels leaf topics that sit at the top level of the
// syllabus and therefore have no ancestor to group under.
const DefaultParentSubject = "General"

// Flatten walks the syllabus depth-first and collects every leaf topic,
// tagged with its nearest ancestor title (or "General" for top-level
// leaves) and its computed due status at the given instant.
func Flatten(s *models.Syllabus, now time.Time) []models.TopicWithStatus {
	out := []models.TopicWithStatus{}
	if s == nil {
		return out
	}
	var walk func(n *models.SyllabusNode, parent string)
	walk = func(n *models.SyllabusNode, parent string) {
		if n.IsLeaf() {
			out = append(out, topicStatus(n, parent, now))
			return
		}
		for _, c := range n.Children {
			if c != nil {
				walk(c, n.Title)
			}
		}
	}
	for _, item := range s.Items {
		if item != nil {
			walk(item, DefaultParentSubject)
		}
	}
	return out
}

func topicStatus(n *models.SyllabusNode, parent string, now time.Time) models.TopicWithStatus {
	t := models.TopicWithStatus{
		ID:               n.ID,
		Title:            n.Title,
		ParentSubject:    parent,
		RevisionInterval: models.DefaultRevisionInterval,
	}
	if n.Stats != nil {
		t.TotalMinutes = n.Stats.TotalMinutes
		t.LastStudied = n.Stats.LastStudied
		t.NeedsRevision = n.Stats.NeedsRevision
		if n.Stats.RevisionInterval > 0 {
			t.RevisionInterval = n.Stats.RevisionInterval
		}
	}
	t.Due = IsDue(n.Stats, now)
	return t
}

// IsDue reports whether a topic's revision cycle has elapsed: the persisted
// needsRevision flag is set, or at least revisionInterval days have passed
// since it was last studied. A topic never studied is not due from the
// elapsed-time rule alone.
func IsDue(stats *models.TopicStats, now time.Time) bool {
	if stats == nil {
		return false
	}
	if stats.NeedsRevision {
		return true
	}
	if stats.LastStudied == nil {
		return false
	}
	last, err := time.Parse(time.RFC3339, *stats.LastStudied)
	if err != nil {
		return false
	}
	interval := stats.RevisionInterval
	if interval <= 0 {
		interval = models.DefaultRevisionInterval
	}
	return now.Sub(last) >= time.Duration(interval)*24*time.Hour
}

// Filter selects which flattened topics Group keeps.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterDue    Filter = "due"    // topics whose revision cycle has elapsed
	FilterActive Filter = "active" // studied topics that are not yet due
)

// Group buckets flattened topics by parent subject in first-seen order,
// after applying the filter and an optional case-insensitive substring
// search over topic titles and parent subjects.
func Group(topics []models.TopicWithStatus, filter Filter, search string) []models.TopicGroup {
	search = strings.ToLower(strings.TrimSpace(search))

	bySubject := map[string]int{}
	groups := []models.TopicGroup{}
	for _, t := range topics {
		switch filter {
		case FilterDue:
			if !t.Due {
				continue
			}
		case FilterActive:
			if t.TotalMinutes <= 0 || t.Due {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.ParentSubject), search) {
			continue
		}

		i, ok := bySubject[t.ParentSubject]
		if !ok {
			i = len(groups)
			bySubject[t.ParentSubject] = i
			groups = append(groups, models.TopicGroup{Subject: t.ParentSubject})
		}
		groups[i].Topics = append(groups[i].Topics, t)
	}
	return groups
}

// CountDue returns how many of the flattened topics are due.
func CountDue(topics []models.TopicWithStatus) int {
	n := 0
	for _, t := range topics {
		if t.Due {
			n++
		}
	}
	return n
}
