package navigation

import "fmt"

// NodeView is the serialisable form of a navigation tree. Source trees arrive
// in this shape and output trees leave in it.
type NodeView struct {
	Key         string     `json:"key"`
	Text        string     `json:"text"`
	Action      string     `json:"action,omitempty"`
	Type        NodeType   `json:"type"`
	Icon        string     `json:"icon,omitempty"`
	Hidden      bool       `json:"hidden,omitempty"`
	ShortBranch bool       `json:"short_branch,omitempty"`
	Active      bool       `json:"active,omitempty"`
	Children    []NodeView `json:"children,omitempty"`
}

func Export(n *Node) NodeView {
	if n == nil {
		return NodeView{}
	}
	v := NodeView{
		Key:         n.Key,
		Text:        n.Text,
		Action:      n.Action,
		Type:        n.Type,
		Icon:        n.Icon,
		Hidden:      n.Hidden,
		ShortBranch: n.ShortBranch,
		Active:      n.Active,
	}
	for _, c := range n.children {
		v.Children = append(v.Children, Export(c))
	}
	return v
}

// ExportList exports a slice of nodes, e.g. one side of an OverflowSplit.
func ExportList(nodes []*Node) []NodeView {
	out := make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Export(n))
	}
	return out
}

// Import builds an owned tree from v. Unknown node types are rejected; an
// empty type means TypeCustom.
func Import(v NodeView) (*Node, error) {
	typ, err := ParseNodeType(string(v.Type))
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", v.Key, err)
	}
	n := NewNode(v.Key, v.Text, v.Action, typ)
	n.Icon = v.Icon
	n.Hidden = v.Hidden
	n.ShortBranch = v.ShortBranch
	n.Active = v.Active
	for _, cv := range v.Children {
		c, err := Import(cv)
		if err != nil {
			return nil, err
		}
		n.AddNode(c)
	}
	return n, nil
}
