package revision

import (
	"time"

	"github.com/example/studytrack/pkg/models"
)

// Mutations rewrite the whole collection: each one deep-copies the input,
// edits the active syllabus's tree through an id-indexed arena, and returns
// the new collection for an all-or-nothing store write. The input is never
// modified. An unknown topic id leaves the copy structurally unchanged; it
// is not an error.

// SetInterval sets the revision interval, in days, of the topic with the
// given id. Non-positive day counts fall back to the default interval.
func SetInterval(coll *models.SyllabusCollection, lastUsedID, topicID string, days int) *models.SyllabusCollection {
	if days <= 0 {
		days = models.DefaultRevisionInterval
	}
	return mutate(coll, lastUsedID, func(a *nodeArena) {
		if n, ok := a.nodes[topicID]; ok {
			ensureStats(n).RevisionInterval = days
		}
	})
}

// MarkRevised records a completed revision: lastStudied moves to now and the
// persisted needsRevision flag clears, resetting the due cycle.
func MarkRevised(coll *models.SyllabusCollection, lastUsedID, topicID string, now time.Time) *models.SyllabusCollection {
	return mutate(coll, lastUsedID, func(a *nodeArena) {
		if n, ok := a.nodes[topicID]; ok {
			ts := now.Format(time.RFC3339)
			st := ensureStats(n)
			st.LastStudied = &ts
			st.NeedsRevision = false
		}
	})
}

// DeleteTopic removes the topic (and its subtree) from the tree. No stats
// are retained for removed nodes.
func DeleteTopic(coll *models.SyllabusCollection, lastUsedID, topicID string) *models.SyllabusCollection {
	return mutate(coll, lastUsedID, func(a *nodeArena) {
		a.remove(topicID)
	})
}

func mutate(coll *models.SyllabusCollection, lastUsedID string, fn func(*nodeArena)) *models.SyllabusCollection {
	out := coll.Clone()
	if out == nil {
		return nil
	}
	id, active := out.Active(lastUsedID)
	if active == nil {
		return out
	}
	a := buildArena(active.Items)
	fn(a)
	active.Items = a.rebuild()
	out.Syllabi[id] = active
	return out
}

func ensureStats(n *models.SyllabusNode) *models.TopicStats {
	if n.Stats == nil {
		n.Stats = &models.TopicStats{RevisionInterval: models.DefaultRevisionInterval}
	}
	return n.Stats
}
