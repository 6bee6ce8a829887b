package analytics

import (
	"strings"

	"github.com/example/studytrack/pkg/models"
)

// AggregatePapers walks every top-level paper of the syllabus depth-first and
// returns per-paper totals plus the title index used by the log mapper.
//
// Every node, at any depth, counts toward its paper's total; it counts toward
// completed iff its id is in the syllabus's completed set. The index maps the
// lower-cased title of every node to the id of its enclosing top-level paper;
// when the same title occurs under two papers the later-traversed paper wins.
//
// A nil or empty syllabus yields an empty paper list and an empty index.
func AggregatePapers(s *models.Syllabus) ([]models.PaperSummary, models.TitleIndex) {
	index := models.TitleIndex{}
	summaries := []models.PaperSummary{}
	if s == nil {
		return summaries, index
	}

	completed := make(map[string]bool, len(s.Completed))
	for _, id := range s.Completed {
		completed[id] = true
	}

	for _, paper := range s.Items {
		if paper == nil {
			continue
		}
		total, done := 0, 0
		var walk func(n *models.SyllabusNode)
		walk = func(n *models.SyllabusNode) {
			total++
			if completed[n.ID] {
				done++
			}
			index[strings.ToLower(n.Title)] = paper.ID
			for _, c := range n.Children {
				if c != nil {
					walk(c)
				}
			}
		}
		walk(paper)

		pct := 0
		if total > 0 {
			pct = roundPercent(float64(done), float64(total))
		}
		summaries = append(summaries, models.PaperSummary{
			ID:                 paper.ID,
			Name:               paper.Title,
			TotalNodeCount:     total,
			CompletedNodeCount: done,
			ProgressPercent:    pct,
		})
	}
	return summaries, index
}
