package navigation

// OverflowSplit divides a view's top level into the entries shown inline and
// the ones collapsed into a "More" menu.
type OverflowSplit struct {
	Visible []*Node
	More    []*Node
	// ActiveInMore is set when the active entry (or one of its descendants)
	// ended up in More, so the renderer can highlight the menu toggle.
	ActiveInMore bool
}

// SplitOverflow keeps the first limit visible children of root inline. Hidden
// children are left out of both lists. A limit <= 0 keeps everything inline.
func SplitOverflow(root *Node, limit int) OverflowSplit {
	var split OverflowSplit
	if root == nil {
		return split
	}
	for _, c := range root.Children() {
		if c.Hidden {
			continue
		}
		if limit <= 0 || len(split.Visible) < limit {
			split.Visible = append(split.Visible, c)
			continue
		}
		split.More = append(split.More, c)
		if containsActive(c) {
			split.ActiveInMore = true
		}
	}
	return split
}

func containsActive(n *Node) bool {
	if n.Active {
		return true
	}
	found := false
	n.Walk(func(c *Node) bool {
		if c.Active {
			found = true
			return false
		}
		return true
	})
	return found
}
