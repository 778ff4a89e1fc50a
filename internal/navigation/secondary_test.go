package navigation

import (
	"reflect"
	"testing"
)

const testRoot = "http://lms.test"

func node(key string, typ NodeType, children ...*Node) *Node {
	n := NewNode(key, key, testRoot+"/"+key, typ)
	for _, c := range children {
		n.AddNode(c)
	}
	return n
}

func coursePage(courseID int64) PageContext {
	return PageContext{
		Level:            LevelCourse,
		CourseID:         courseID,
		SiteHomeCourseID: 1,
		WWWRoot:          testRoot,
		URL:              testRoot + "/course/view.php?id=2",
	}
}

func childKeys(n *Node) []string { return n.ChildKeys() }

func findAnywhere(root *Node, key string) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if n.Key == key {
			found = n
			return false
		}
		return true
	})
	return found
}

func defaultCourseSources() Sources {
	settings := node("settingsnav", TypeCustom,
		node("courseadmin", TypeCourse,
			node("editsettings", TypeSetting),
			node("coursereports", TypeContainer),
			node("gradeadmin", TypeContainer,
				node("gradebooksetup", TypeSetting),
			),
		),
	)
	main := node("navigation", TypeCustom,
		node("currentcourse", TypeCourse,
			node("participants", TypeContainer),
			node("grades", TypeSetting),
		),
	)
	return Sources{Settings: settings, Main: main}
}

func TestSecondaryCourseDefaultLayout(t *testing.T) {
	src := defaultCourseSources()
	v := NewSecondaryView(coursePage(2), src)
	v.Initialise()

	want := []string{KeyCourseHome, "editsettings", "participants", "grades", "coursereports", KeyCourseAdmin}
	if got := childKeys(v.Root()); !reflect.DeepEqual(got, want) {
		t.Fatalf("top level: got=%v want=%v", got, want)
	}
	grades := v.Root().Get("grades")
	if got := childKeys(grades); !reflect.DeepEqual(got, []string{"gradebooksetup"}) {
		t.Fatalf("grades children: got=%v", got)
	}
	if got := v.Root().Get(KeyCourseHome).Action; got != testRoot+"/course/view.php?id=2" {
		t.Fatalf("course home action: got=%q", got)
	}
	if got := v.Root().Get(KeyCourseAdmin).Action; got != testRoot+"/course/admin.php?courseid=2" {
		t.Fatalf("course admin action: got=%q", got)
	}
	if len(v.Dropped()) != 0 {
		t.Fatalf("unexpected dropped nodes: %+v", v.Dropped())
	}
}

func TestSecondaryMovesNodesOutOfSources(t *testing.T) {
	src := defaultCourseSources()
	v := NewSecondaryView(coursePage(2), src)
	v.Initialise()

	if n := src.Settings.Find("editsettings", TypeSetting); n != nil {
		t.Fatalf("editsettings still reachable from the settings tree")
	}
	if p := v.Root().Get("editsettings").Parent(); p != v.Root() {
		t.Fatalf("editsettings parent: got=%v want view root", p)
	}
}

func TestSecondaryInitialiseIsIdempotent(t *testing.T) {
	v := NewSecondaryView(coursePage(2), defaultCourseSources())
	v.Initialise()
	first := Export(v.Root())

	v.Initialise()
	if !v.Initialised() {
		t.Fatalf("expected initialised")
	}
	if second := Export(v.Root()); !reflect.DeepEqual(first, second) {
		t.Fatalf("second Initialise changed the tree:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestSecondaryIntegerPositionsAscending(t *testing.T) {
	settings := node("settingsnav", TypeCustom,
		node("c", TypeSetting),
		node("a", TypeSetting),
		node("d", TypeSetting),
		node("b", TypeSetting),
	)
	layouts := LayoutSet{
		LayoutCourseSettings: NewPositionMap().
			Set(TypeSetting, "c", "30").
			Set(TypeSetting, "a", "1").
			Set(TypeSetting, "d", "100").
			Set(TypeSetting, "b", "4"),
		LayoutCourseNavigation: NewPositionMap(),
	}
	v := NewSecondaryView(coursePage(2), Sources{Settings: settings, Main: node("nav", TypeCustom)}, WithLayouts(layouts))
	v.Initialise()

	want := []string{KeyCourseHome, "a", "b", "c", "d", KeyCourseAdmin}
	if got := childKeys(v.Root()); !reflect.DeepEqual(got, want) {
		t.Fatalf("order: got=%v want=%v", got, want)
	}
}

func TestSecondaryFractionalPositionNests(t *testing.T) {
	settings := node("settingsnav", TypeCustom,
		node("A", TypeSetting),
		node("B", TypeSetting),
		node("C", TypeSetting),
	)
	layouts := LayoutSet{
		LayoutCourseSettings: NewPositionMap().
			Set(TypeSetting, "A", "0").
			Set(TypeSetting, "B", "1").
			Set(TypeSetting, "C", "1.1"),
		LayoutCourseNavigation: NewPositionMap(),
	}
	v := NewSecondaryView(coursePage(2), Sources{Settings: settings}, WithLayouts(layouts))
	v.Initialise()

	if v.Root().Get("C") != nil {
		t.Fatalf("C should not be a top-level sibling")
	}
	b := v.Root().Get("B")
	if b == nil || b.Get("C") == nil {
		t.Fatalf("C should be nested under B, top level=%v", childKeys(v.Root()))
	}
}

func TestSecondaryOrphanedFractionalIsDropped(t *testing.T) {
	settings := node("settingsnav", TypeCustom, node("C", TypeSetting))
	layouts := LayoutSet{
		LayoutCourseSettings:   NewPositionMap().Set(TypeSetting, "C", "2.1"),
		LayoutCourseNavigation: NewPositionMap(),
	}
	v := NewSecondaryView(coursePage(2), Sources{Settings: settings}, WithLayouts(layouts))
	v.Initialise()

	if findAnywhere(v.Root(), "C") != nil {
		t.Fatalf("orphaned node C should not appear in the output")
	}
	dropped := v.Dropped()
	if len(dropped) != 1 || dropped[0].NodeKey != "C" || dropped[0].Placement.Position.Key() != "2.1" {
		t.Fatalf("dropped: got=%+v", dropped)
	}
}

func TestSecondaryCourseMergeKeepsFirstSource(t *testing.T) {
	settings := node("settingsnav", TypeCustom, node("fromsettings", TypeSetting))
	main := node("navigation", TypeCustom, node("contentbank", TypeCustom))
	layouts := LayoutSet{
		LayoutCourseSettings:   NewPositionMap().Set(TypeSetting, "fromsettings", "5"),
		LayoutCourseNavigation: NewPositionMap().Set(TypeCustom, "contentbank", "5"),
	}
	v := NewSecondaryView(coursePage(2), Sources{Settings: settings, Main: main}, WithLayouts(layouts))
	v.Initialise()

	want := []string{KeyCourseHome, "fromsettings", KeyCourseAdmin}
	if got := childKeys(v.Root()); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if main.Find("contentbank", TypeCustom) == nil {
		t.Fatalf("losing node should stay in its source tree")
	}
}

func TestSecondarySiteHomeCourseIsEmpty(t *testing.T) {
	page := coursePage(1)
	v := NewSecondaryView(page, defaultCourseSources())
	v.Initialise()

	if v.Root().Len() != 0 {
		t.Fatalf("site home course should build nothing, got=%v", childKeys(v.Root()))
	}
	if !v.Initialised() {
		t.Fatalf("expected initialised")
	}
}

func TestSecondaryUnsupportedContextIsEmpty(t *testing.T) {
	page := PageContext{Level: LevelUser, WWWRoot: testRoot}
	v := NewSecondaryView(page, defaultCourseSources())
	v.Initialise()

	if v.Root().Len() != 0 {
		t.Fatalf("expected empty view, got=%v", childKeys(v.Root()))
	}
}

func moduleSources(children ...*Node) Sources {
	return Sources{
		Settings: node("settingsnav", TypeCustom,
			node(KeyModuleSettings, TypeSetting, children...),
		),
	}
}

func modulePage() PageContext {
	return PageContext{
		Level:        LevelModule,
		CourseID:     2,
		ModuleID:     7,
		ActivityName: "quiz",
		WWWRoot:      testRoot,
		URL:          testRoot + "/mod/quiz/view.php?id=7",
	}
}

func TestSecondaryModuleLeftoversFollowPlacedNodes(t *testing.T) {
	src := moduleSources(
		node("X", TypeSetting),
		node("Y", TypeSetting),
		node("Z", TypeSetting),
	)
	layouts := LayoutSet{LayoutModuleSettings: NewPositionMap().Set(TypeSetting, "X", "1")}
	v := NewSecondaryView(modulePage(), src, WithLayouts(layouts))
	v.Initialise()

	want := []string{KeyModulePage, "X", "Y", "Z"}
	if got := childKeys(v.Root()); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestSecondaryModuleDefaultLayout(t *testing.T) {
	src := moduleSources(
		node("roleassign", TypeSetting),
		node("mod_quiz_useroverrides", TypeSetting),
		node("modedit", TypeSetting),
		node("roleoverride", TypeSetting,
			node("rolecheck", TypeSetting),
		),
		node("advgrading", TypeCustom),
		node("pluginextra", TypeSetting),
		node("mod_assign_useroverrides", TypeSetting),
	)
	v := NewSecondaryView(modulePage(), src)
	v.Initialise()

	want := []string{
		KeyModulePage,
		"modedit",
		"advgrading",
		"roleoverride",
		"mod_quiz_useroverrides",
		"roleassign",
		"pluginextra",
		"mod_assign_useroverrides",
	}
	if got := childKeys(v.Root()); !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if v.Root().Get("roleoverride").Get("rolecheck") == nil {
		t.Fatalf("rolecheck should nest under roleoverride")
	}
	if a := v.Active(); a == nil || a.Key != KeyModulePage {
		t.Fatalf("module page should be active, got=%v", a)
	}
}

func TestSecondaryModuleWithoutSettingsNode(t *testing.T) {
	src := Sources{Settings: node("settingsnav", TypeCustom, node("other", TypeSetting))}
	v := NewSecondaryView(modulePage(), src)
	v.Initialise()
	if v.Root().Len() != 0 {
		t.Fatalf("expected empty view, got=%v", childKeys(v.Root()))
	}
}

func TestSecondaryAdminSplitsShortBranches(t *testing.T) {
	users := node("users", TypeSetting)
	courses := node("courses", TypeSetting)
	courses.ShortBranch = true
	hidden := node("hiddenpage", TypeSetting)
	hidden.Hidden = true
	admin := node(KeySiteAdminRoot, TypeSiteAdmin, users, courses, hidden)
	admin.Text = "Site administration"

	page := PageContext{Level: LevelSystem, WWWRoot: testRoot, URL: testRoot + "/admin/search.php"}
	v := NewSecondaryView(page, Sources{Settings: node("settingsnav", TypeCustom, admin)})
	v.Initialise()

	if got := childKeys(v.Root()); !reflect.DeepEqual(got, []string{KeySiteAdminNode, "users"}) {
		t.Fatalf("top level: got=%v", got)
	}
	siteAdmin := v.Root().Get(KeySiteAdminNode)
	if siteAdmin.Action != "#linkroot" || siteAdmin.Text != "Site administration" {
		t.Fatalf("site admin entry: %+v", siteAdmin)
	}
	if got := childKeys(siteAdmin); !reflect.DeepEqual(got, []string{"courses", "hiddenpage"}) {
		t.Fatalf("site admin children: got=%v", got)
	}
}

func TestSecondaryMarksOneActiveNode(t *testing.T) {
	src := defaultCourseSources()
	// A stale flag from the source tree must not survive.
	src.Settings.Find("editsettings", TypeSetting).Active = true
	// Two nodes share the URL; the first in pre-order wins.
	dup := src.Main.Find("grades", TypeSetting)
	dup.Action = testRoot + "/participants"

	page := coursePage(2)
	page.URL = testRoot + "/participants/"
	v := NewSecondaryView(page, src)
	v.Initialise()

	var active []*Node
	v.Root().Walk(func(n *Node) bool {
		if n.Active {
			active = append(active, n)
		}
		return true
	})
	if len(active) != 1 || active[0].Key != "participants" {
		t.Fatalf("active nodes: got=%d (%v)", len(active), active)
	}
	if v.Active() != active[0] {
		t.Fatalf("Active() mismatch")
	}
}

func TestSecondaryActiveFallsBackToFullURL(t *testing.T) {
	page := coursePage(2)
	page.URL = ""
	page.FullURL = testRoot + "/course/admin.php?courseid=2"
	v := NewSecondaryView(page, defaultCourseSources())
	v.Initialise()
	if a := v.Active(); a == nil || a.Key != KeyCourseAdmin {
		t.Fatalf("expected course admin active, got=%v", a)
	}
}
