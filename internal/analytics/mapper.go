package analytics

import (
	"strings"

	"github.com/example/studytrack/pkg/models"
)

// OtherBucketID identifies study time that could not be attributed to any
// paper of the active syllabus.
const OtherBucketID = "other"

// otherBucketThreshold is the minimum accumulated hours before the "other"
// bucket is surfaced at all.
const otherBucketThreshold = 0.5

// MapLogsToPapers buckets the study minutes of the given (already filtered)
// logs into the papers of the active syllabus. Matching is case-insensitive
// and tries, in order: the log's subject against the title index, the log's
// topic against the title index, then a substring match against the paper
// names in list order. Unmatched time accumulates into the "other" bucket,
// which is surfaced only once it exceeds half an hour.
//
// Accumulation uses unrounded hours; only the returned values are rounded to
// one decimal place.
func MapLogsToPapers(logs []models.StudyLogEntry, papers []models.PaperSummary, index models.TitleIndex) []models.PaperHours {
	byPaper := make(map[string]float64, len(papers))
	other := 0.0

	for _, lg := range logs {
		h := float64(lg.DurationMinutes) / 60
		if id, ok := resolvePaper(lg, papers, index); ok {
			byPaper[id] += h
		} else {
			other += h
		}
	}

	out := []models.PaperHours{}
	for _, p := range papers {
		if h := byPaper[p.ID]; h > 0 {
			out = append(out, models.PaperHours{ID: p.ID, Name: p.Name, Hours: round1(h)})
		}
	}
	if other > otherBucketThreshold {
		out = append(out, models.PaperHours{ID: OtherBucketID, Name: "Other", Hours: round1(other)})
	}
	return out
}

// resolvePaper applies the matching policy; first hit wins.
func resolvePaper(lg models.StudyLogEntry, papers []models.PaperSummary, index models.TitleIndex) (string, bool) {
	subject := strings.ToLower(strings.TrimSpace(lg.Subject))
	topic := strings.ToLower(strings.TrimSpace(lg.Topic))

	if subject != "" {
		if id, ok := index[subject]; ok {
			return id, true
		}
	}
	if topic != "" {
		if id, ok := index[topic]; ok {
			return id, true
		}
	}
	if subject != "" {
		for _, p := range papers {
			name := strings.ToLower(p.Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, subject) || strings.Contains(subject, name) {
				return p.ID, true
			}
		}
	}
	return "", false
}
