package navigation

import (
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

const (
	KeySecondaryRoot  = "secondary_navigation"
	KeyPrimaryRoot    = "primary_navigation"
	KeyCourseHome     = "coursehome"
	KeyCourseAdmin    = "courseadmin"
	KeyModulePage     = "modulepage"
	KeySiteAdminNode  = "siteadminnode"
	KeyBrandNode      = "brandnode"
	KeySiteAdminRoot  = "root"
	KeyModuleSettings = "modulesettings"
)

// Labels are the display strings for the entries the views create themselves.
type Labels struct {
	CoursePage  string
	CourseAdmin string
	Module      string
}

func DefaultLabels() Labels {
	return Labels{
		CoursePage:  "Course",
		CourseAdmin: "Course administration",
		Module:      "Module",
	}
}

// Sources are the two fully built trees a view selects from. The settings
// tree holds administrative links; the main tree holds course/content links.
type Sources struct {
	Settings *Node
	Main     *Node
}

type Option func(*options)

type options struct {
	layouts LayoutSet
	labels  Labels
	log     *logger.Logger
}

func WithLayouts(set LayoutSet) Option {
	return func(o *options) { o.layouts = set }
}

func WithLabels(l Labels) Option {
	return func(o *options) { o.labels = l }
}

func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(opts []Option) options {
	o := options{layouts: DefaultLayouts(), labels: DefaultLabels()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.layouts == nil {
		o.layouts = DefaultLayouts()
	}
	return o
}

// SecondaryView assembles the per-context menu shown under the page header.
// It is built once per request; Initialise populates it and later calls are
// no-ops.
type SecondaryView struct {
	root    *Node
	page    PageContext
	sources Sources
	opts    options

	initialised bool
	dropped     []Dropped
	active      *Node
}

func NewSecondaryView(page PageContext, sources Sources, opts ...Option) *SecondaryView {
	return &SecondaryView{
		root:    NewNode(KeySecondaryRoot, "", "", TypeCustom),
		page:    page,
		sources: sources,
		opts:    buildOptions(opts),
	}
}

func (v *SecondaryView) Root() *Node { return v.root }

func (v *SecondaryView) Initialised() bool { return v.initialised }

// Dropped lists nested placements discarded because their parent slot was
// empty.
func (v *SecondaryView) Dropped() []Dropped {
	out := make([]Dropped, len(v.dropped))
	copy(out, v.dropped)
	return out
}

// Active returns the node marked active, if any.
func (v *SecondaryView) Active() *Node { return v.active }

func (v *SecondaryView) Initialise() {
	if v.initialised {
		return
	}
	switch v.page.Level {
	case LevelCourse:
		if !v.page.IsSiteHome() {
			v.loadCourse()
		}
	case LevelModule:
		v.loadModule()
	case LevelSystem:
		v.loadAdmin()
	default:
		v.warn("secondary navigation: unsupported context", "level", string(v.page.Level))
	}

	v.active = markActive(v.root, v.page.ActiveURL())
	v.initialised = true
}

func (v *SecondaryView) loadCourse() {
	labels := v.opts.labels
	v.root.Add(labels.CoursePage, v.page.CourseHomeURL(), TypeCourse, KeyCourseHome, "")

	sel := SelectLeafNodes(v.sources.Settings, v.opts.layouts.Get(LayoutCourseSettings))
	sel.Merge(SelectLeafNodes(v.sources.Main, v.opts.layouts.Get(LayoutCourseNavigation)))
	v.attach(sel)

	v.root.Add(labels.CourseAdmin, v.page.CourseAdminURL(), TypeCustom, KeyCourseAdmin, "t/edit")
}

func (v *SecondaryView) loadModule() {
	if v.sources.Settings == nil {
		return
	}
	main := v.sources.Settings.Find(KeyModuleSettings, TypeSetting)
	if main == nil {
		return
	}
	layout := v.opts.layouts.Get(LayoutModuleSettings).Expand(map[string]string{
		"activity": v.page.ActivityName,
	})

	v.root.Add(v.opts.labels.Module, v.page.ActiveURL(), TypeCustom, KeyModulePage, "")
	v.attach(SelectLeafNodes(main, layout))
	AttachLeftoverNodes(v.root, main, layout)
}

func (v *SecondaryView) loadAdmin() {
	if v.sources.Settings == nil {
		return
	}
	node := v.sources.Settings.Find(KeySiteAdminRoot, TypeSiteAdmin)
	if node == nil {
		return
	}
	siteAdmin := v.root.Add(node.Text, "#link"+node.Key, TypeCustom, KeySiteAdminNode, "")
	for _, child := range node.Children() {
		if !child.Hidden && !child.ShortBranch {
			v.root.AddNode(child)
		} else {
			siteAdmin.AddNode(child)
		}
	}
}

func (v *SecondaryView) attach(sel Selection) {
	dropped := attachSelection(v.root, sel, false)
	for _, d := range dropped {
		v.debug("secondary navigation: dropped nested node without parent",
			"key", d.NodeKey,
			"position", d.Placement.Position.Key(),
		)
	}
	v.dropped = append(v.dropped, dropped...)
}

func (v *SecondaryView) warn(msg string, kv ...interface{}) {
	if v.opts.log != nil {
		v.opts.log.Warn(msg, kv...)
	}
}

func (v *SecondaryView) debug(msg string, kv ...interface{}) {
	if v.opts.log != nil {
		v.opts.log.Debug(msg, kv...)
	}
}
