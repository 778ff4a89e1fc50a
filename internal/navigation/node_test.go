package navigation

import (
	"reflect"
	"testing"
)

func TestAddNodeTransfersOwnership(t *testing.T) {
	src := NewNode("src", "", "", TypeCustom)
	dst := NewNode("dst", "", "", TypeCustom)
	child := src.Add("Child", "/child", TypeSetting, "child", "")

	dst.AddNode(child)

	if src.Len() != 0 {
		t.Fatalf("source still holds %v", src.ChildKeys())
	}
	if child.Parent() != dst {
		t.Fatalf("parent not reassigned")
	}
}

func TestAddNodeReplacesSameTypeAndKey(t *testing.T) {
	root := NewNode("root", "", "", TypeCustom)
	first := root.Add("One", "/1", TypeSetting, "k", "")
	root.Add("Other", "/o", TypeSetting, "other", "")
	root.Add("Same key, other type", "/c", TypeContainer, "k", "")
	second := root.Add("Two", "/2", TypeSetting, "k", "")

	if got := root.ChildKeys(); !reflect.DeepEqual(got, []string{"k", "other", "k"}) {
		t.Fatalf("keys: got=%v", got)
	}
	if root.Children()[0] != second {
		t.Fatalf("replacement should keep the original slot")
	}
	if first.Parent() != nil {
		t.Fatalf("replaced node should be orphaned")
	}
}

func TestAddNodeRefusesCycles(t *testing.T) {
	a := NewNode("a", "", "", TypeCustom)
	b := a.Add("b", "", TypeCustom, "b", "")
	c := b.Add("c", "", TypeCustom, "c", "")

	if c.AddNode(a) != nil {
		t.Fatalf("adding an ancestor should be refused")
	}
	if a.AddNode(a) != nil {
		t.Fatalf("adding a node to itself should be refused")
	}
	if b.Parent() != a || c.Parent() != b {
		t.Fatalf("tree changed after refused add")
	}
}

func TestIndexPrefersShallowAndEarlierMatches(t *testing.T) {
	deepFirst := NewNode("x", "deep first", "", TypeSetting)
	deepSecond := NewNode("x", "deep second", "", TypeSetting)
	shallow := NewNode("x", "shallow", "", TypeSetting)

	root := NewNode("root", "", "", TypeCustom)
	a := root.Add("a", "", TypeCustom, "a", "")
	a.AddNode(deepFirst)
	b := root.Add("b", "", TypeCustom, "b", "")
	b.AddNode(deepSecond)

	if got := root.Find("x", TypeSetting); got != deepFirst {
		t.Fatalf("expected earlier subtree to win, got=%q", got.Text)
	}

	root.AddNode(shallow)
	if got := root.Find("x", TypeSetting); got != shallow {
		t.Fatalf("expected direct child to win, got=%q", got.Text)
	}
	if root.Find("x", TypeContainer) != nil {
		t.Fatalf("type must be part of the lookup")
	}
	if root.Find("root", TypeCustom) != nil {
		t.Fatalf("the searched node itself is not a match")
	}
}

func TestParseNodeType(t *testing.T) {
	cases := map[string]NodeType{
		"setting":    TypeSetting,
		"SITE_ADMIN": TypeSiteAdmin,
		" container": TypeContainer,
		"":           TypeCustom,
	}
	for in, want := range cases {
		got, err := ParseNodeType(in)
		if err != nil || got != want {
			t.Fatalf("ParseNodeType(%q): got=%q err=%v want=%q", in, got, err, want)
		}
	}
	if _, err := ParseNodeType("activity"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
