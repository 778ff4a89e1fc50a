// Package navigation assembles the primary and secondary navigation views of a
// page from the settings and main navigation trees the platform builds.
package navigation

import (
	"fmt"
	"strings"
)

// NodeType tags what a navigation node represents. Lookups are scoped by
// (type, key), so two nodes may share a key as long as their types differ.
type NodeType string

const (
	TypeSystem    NodeType = "system"
	TypeCourse    NodeType = "course"
	TypeCustom    NodeType = "custom"
	TypeSetting   NodeType = "setting"
	TypeSiteAdmin NodeType = "siteadmin"
	TypeContainer NodeType = "container"
)

var nodeTypes = map[NodeType]struct{}{
	TypeSystem:    {},
	TypeCourse:    {},
	TypeCustom:    {},
	TypeSetting:   {},
	TypeSiteAdmin: {},
	TypeContainer: {},
}

// ParseNodeType accepts the canonical names plus a few common spellings
// ("site_admin", "SITE_ADMIN"). An empty string maps to TypeCustom.
func ParseNodeType(raw string) (NodeType, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return TypeCustom, nil
	}
	t := NodeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown node type %q", raw)
	}
	return t, nil
}

func (t NodeType) Valid() bool {
	_, ok := nodeTypes[t]
	return ok
}

// Node is one entry of a navigation tree. A node has at most one parent;
// AddNode moves a node out of whatever tree held it before.
type Node struct {
	Key    string
	Text   string
	Action string
	Type   NodeType
	Icon   string

	Hidden      bool
	ShortBranch bool
	Active      bool

	parent   *Node
	children []*Node
}

func NewNode(key, text, action string, typ NodeType) *Node {
	if typ == "" {
		typ = TypeCustom
	}
	return &Node{Key: key, Text: text, Action: action, Type: typ}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the child list in display order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Len() int { return len(n.children) }

// Add creates a new child and appends it.
func (n *Node) Add(text, action string, typ NodeType, key, icon string) *Node {
	child := NewNode(key, text, action, typ)
	child.Icon = icon
	return n.AddNode(child)
}

// AddNode detaches child from its current parent and appends it to n. A
// sibling with the same (type, key) is replaced in place. Adding n to itself
// or to one of its own descendants is refused and returns nil.
func (n *Node) AddNode(child *Node) *Node {
	if child == nil || child == n || child.isAncestorOf(n) {
		return nil
	}
	child.Detach()
	child.parent = n
	if child.Key != "" {
		for i, sib := range n.children {
			if sib.Key == child.Key && sib.Type == child.Type {
				sib.parent = nil
				n.children[i] = child
				return child
			}
		}
	}
	n.children = append(n.children, child)
	return child
}

// Detach removes n from its parent and returns it.
func (n *Node) Detach() *Node {
	p := n.parent
	if p == nil {
		return n
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	return n
}

// Get returns the first direct child with the given key, whatever its type.
func (n *Node) Get(key string) *Node {
	for _, c := range n.children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// ChildKeys lists the keys of the direct children, in order.
func (n *Node) ChildKeys() []string {
	keys := make([]string, 0, len(n.children))
	for _, c := range n.children {
		keys = append(keys, c.Key)
	}
	return keys
}

// Find looks up a descendant by (key, type). Repeated lookups against the same
// tree should share an Index instead.
func (n *Node) Find(key string, typ NodeType) *Node {
	return NewIndex(n).Find(key, typ)
}

// Walk visits every descendant of n in pre-order. Returning false from fn
// stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) {
			return false
		}
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Copy returns a parentless, childless copy of n.
func (n *Node) Copy() *Node {
	return &Node{
		Key:         n.Key,
		Text:        n.Text,
		Action:      n.Action,
		Type:        n.Type,
		Icon:        n.Icon,
		Hidden:      n.Hidden,
		ShortBranch: n.ShortBranch,
	}
}

func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
