package revision

import "github.com/example/studytrack/pkg/models"

// nodeArena is an id-indexed view of one syllabus tree. Mutations operate on
// the flat node map and the child-id lists; rebuild reassembles the tree in
// a single pass. This keeps tree rewrites bounded and makes removal a map
// operation instead of a recursive splice.
type nodeArena struct {
	nodes    map[string]*models.SyllabusNode
	children map[string][]string
	parents  map[string]string // child id -> parent id; roots are absent
	rootIDs  []string
}

// buildArena flattens the syllabus items into an arena of cloned nodes. The
// input tree is not touched.
func buildArena(items []*models.SyllabusNode) *nodeArena {
	a := &nodeArena{
		nodes:    map[string]*models.SyllabusNode{},
		children: map[string][]string{},
		parents:  map[string]string{},
	}
	type frame struct {
		node   *models.SyllabusNode
		parent string
	}
	stack := []frame{}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] != nil {
			stack = append(stack, frame{node: items[i]})
		}
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		clone := &models.SyllabusNode{ID: n.ID, Title: n.Title}
		if n.Stats != nil {
			st := *n.Stats
			if n.Stats.LastStudied != nil {
				v := *n.Stats.LastStudied
				st.LastStudied = &v
			}
			clone.Stats = &st
		}
		a.nodes[n.ID] = clone
		if f.parent == "" {
			a.rootIDs = append(a.rootIDs, n.ID)
		} else {
			a.parents[n.ID] = f.parent
			a.children[f.parent] = append(a.children[f.parent], n.ID)
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i] != nil {
				stack = append(stack, frame{node: n.Children[i], parent: n.ID})
			}
		}
	}
	return a
}

// remove drops the node and its whole subtree from the arena. Returns false
// if the id is not present.
func (a *nodeArena) remove(id string) bool {
	if _, ok := a.nodes[id]; !ok {
		return false
	}

	// Detach from the parent (or the root list) first.
	if parent, ok := a.parents[id]; ok {
		a.children[parent] = removeID(a.children[parent], id)
	} else {
		a.rootIDs = removeID(a.rootIDs, id)
	}

	// Drop the subtree.
	pending := []string{id}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		pending = append(pending, a.children[cur]...)
		delete(a.nodes, cur)
		delete(a.children, cur)
		delete(a.parents, cur)
	}
	return true
}

// rebuild reassembles the items slice from the arena's current state.
func (a *nodeArena) rebuild() []*models.SyllabusNode {
	var assemble func(id string) *models.SyllabusNode
	assemble = func(id string) *models.SyllabusNode {
		n := a.nodes[id]
		n.Children = nil
		for _, childID := range a.children[id] {
			if child := assemble(childID); child != nil {
				n.Children = append(n.Children, child)
			}
		}
		return n
	}
	items := make([]*models.SyllabusNode, 0, len(a.rootIDs))
	for _, id := range a.rootIDs {
		items = append(items, assemble(id))
	}
	return items
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
