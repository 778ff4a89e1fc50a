package navigation

import "sort"

// Selected is a node pulled out of a source tree together with the placement
// that claimed it.
type Selected struct {
	Placement Placement
	Node      *Node
}

// Selection maps a canonical position key to the node placed there.
type Selection map[string]Selected

// SelectLeafNodes looks up every placement of m in source. Placements without
// a match are skipped. If two placements share a position, the later one in
// m's order wins.
func SelectLeafNodes(source *Node, m *PositionMap) Selection {
	sel := make(Selection, m.Len())
	if source == nil {
		return sel
	}
	ix := NewIndex(source)
	for _, pl := range m.Entries() {
		if n := ix.Find(pl.Key, pl.Type); n != nil {
			sel[pl.Position.Key()] = Selected{Placement: pl, Node: n}
		}
	}
	return sel
}

// Merge copies other's entries into s without overwriting positions s
// already holds.
func (s Selection) Merge(other Selection) Selection {
	for k, v := range other {
		if _, ok := s[k]; !ok {
			s[k] = v
		}
	}
	return s
}

// Sorted returns the selection in ascending position order.
func (s Selection) Sorted() []Selected {
	out := make([]Selected, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Placement.Position.Cmp(out[j].Placement.Position) < 0
	})
	return out
}

// Dropped records a nested placement whose parent slot was never filled.
type Dropped struct {
	Placement Placement `json:"placement"`
	NodeKey   string    `json:"node_key"`
}

// attachSelection walks sel in position order. Top-level placements go under
// root; nested ones go under the node holding their parent slot, or are
// dropped when that slot is empty. With copyNodes the source nodes stay
// where they are and childless copies are attached instead.
func attachSelection(root *Node, sel Selection, copyNodes bool) []Dropped {
	var dropped []Dropped
	placed := make(map[string]*Node, len(sel))
	for _, s := range sel.Sorted() {
		n := s.Node
		if copyNodes {
			n = n.Copy()
		}
		if !s.Placement.Nested() {
			if root.AddNode(n) != nil {
				placed[s.Placement.Position.Key()] = n
			}
			continue
		}
		parent := placed[s.Placement.Parent.Key()]
		if parent == nil || parent.AddNode(n) == nil {
			dropped = append(dropped, Dropped{Placement: s.Placement, NodeKey: n.Key})
		}
	}
	return dropped
}

// AttachLeftoverNodes appends the children of sourceParent that output does
// not already hold and that claimed does not name, keeping their order.
// This is how entries injected by extensions reach the view.
func AttachLeftoverNodes(output, sourceParent *Node, claimed *PositionMap) []*Node {
	if output == nil || sourceParent == nil {
		return nil
	}
	claimedKeys := claimed.Keys()

	var added []*Node
	for _, child := range sourceParent.Children() {
		if output.Get(child.Key) != nil {
			continue
		}
		if _, ok := claimedKeys[child.Key]; ok {
			continue
		}
		if output.AddNode(child) != nil {
			added = append(added, child)
		}
	}
	return added
}

// markActive clears any active flag under root and sets it on the first node,
// in pre-order, whose action matches url.
func markActive(root *Node, url string) *Node {
	var active *Node
	root.Walk(func(n *Node) bool {
		n.Active = false
		if active == nil && SameURL(n.Action, url) {
			active = n
		}
		return true
	})
	if active != nil {
		active.Active = true
	}
	return active
}
