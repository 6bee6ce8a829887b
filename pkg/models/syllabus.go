package models

// DefaultRevisionInterval is the revision interval, in days, assigned to
// topics that have never had one set.
const DefaultRevisionInterval = 7

// TopicStats carries the revision bookkeeping persisted on a syllabus node.
type TopicStats struct {
	TotalMinutes     int     `json:"totalMinutes"`
	LastStudied      *string `json:"lastStudied"` // RFC3339, nil if never studied
	RevisionInterval int     `json:"revisionInterval"`
	NeedsRevision    bool    `json:"needsRevision"`
}

// SyllabusNode is one node of a syllabus tree. A node without children is a
// leaf topic; any node may carry stats.
type SyllabusNode struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Children []*SyllabusNode `json:"children,omitempty"`
	Stats    *TopicStats     `json:"stats,omitempty"`
}

// IsLeaf reports whether the node is a leaf topic.
func (n *SyllabusNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Syllabus is one named syllabus: its top-level papers plus the set of
// completed node ids.
type Syllabus struct {
	Name      string          `json:"name"`
	Items     []*SyllabusNode `json:"items"`
	Completed []string        `json:"completed"`
}

// SyllabusCollection is the unit of persistence: every mutation rewrites the
// whole document. SyllabusIDs preserves insertion order across JSON
// round-trips so "first syllabus" stays well defined.
type SyllabusCollection struct {
	Syllabi          map[string]*Syllabus `json:"syllabi"`
	SyllabusIDs      []string             `json:"syllabusIds"`
	ActiveSyllabusID string               `json:"activeSyllabusId,omitempty"`
}

// Active resolves the active syllabus: the explicit ActiveSyllabusID if it
// exists, then the caller-supplied last-used id, then the first entry in
// insertion order. Returns ("", nil) for an empty or nil collection.
func (c *SyllabusCollection) Active(lastUsedID string) (string, *Syllabus) {
	if c == nil || len(c.Syllabi) == 0 {
		return "", nil
	}
	if c.ActiveSyllabusID != "" {
		if s, ok := c.Syllabi[c.ActiveSyllabusID]; ok {
			return c.ActiveSyllabusID, s
		}
	}
	if lastUsedID != "" {
		if s, ok := c.Syllabi[lastUsedID]; ok {
			return lastUsedID, s
		}
	}
	for _, id := range c.SyllabusIDs {
		if s, ok := c.Syllabi[id]; ok {
			return id, s
		}
	}
	return "", nil
}

// Clone returns a deep copy of the collection. Pointer fields are copied by
// value so mutations on the copy never leak into the original.
func (c *SyllabusCollection) Clone() *SyllabusCollection {
	if c == nil {
		return nil
	}
	out := &SyllabusCollection{
		Syllabi:          make(map[string]*Syllabus, len(c.Syllabi)),
		SyllabusIDs:      append([]string(nil), c.SyllabusIDs...),
		ActiveSyllabusID: c.ActiveSyllabusID,
	}
	for id, s := range c.Syllabi {
		out.Syllabi[id] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the syllabus.
func (s *Syllabus) Clone() *Syllabus {
	if s == nil {
		return nil
	}
	out := &Syllabus{
		Name:      s.Name,
		Items:     make([]*SyllabusNode, 0, len(s.Items)),
		Completed: append([]string(nil), s.Completed...),
	}
	for _, item := range s.Items {
		out.Items = append(out.Items, item.Clone())
	}
	return out
}

// Clone returns a deep copy of the node and its subtree.
func (n *SyllabusNode) Clone() *SyllabusNode {
	if n == nil {
		return nil
	}
	out := &SyllabusNode{ID: n.ID, Title: n.Title}
	if n.Stats != nil {
		st := *n.Stats
		if n.Stats.LastStudied != nil {
			v := *n.Stats.LastStudied
			st.LastStudied = &v
		}
		out.Stats = &st
	}
	if len(n.Children) > 0 {
		out.Children = make([]*SyllabusNode, 0, len(n.Children))
		for _, c := range n.Children {
			out.Children = append(out.Children, c.Clone())
		}
	}
	return out
}
