package navigation

// PrimaryView is the site-wide top bar: a brand link, a handful of entries
// copied from the main tree, and a link into site administration when the
// settings tree offers one. Source trees are only read, never modified.
type PrimaryView struct {
	root    *Node
	page    PageContext
	sources Sources
	opts    options

	initialised bool
	active      *Node
}

func NewPrimaryView(page PageContext, sources Sources, opts ...Option) *PrimaryView {
	return &PrimaryView{
		root:    NewNode(KeyPrimaryRoot, "", "", TypeCustom),
		page:    page,
		sources: sources,
		opts:    buildOptions(opts),
	}
}

func (v *PrimaryView) Root() *Node { return v.root }

func (v *PrimaryView) Initialised() bool { return v.initialised }

func (v *PrimaryView) Active() *Node { return v.active }

func (v *PrimaryView) Initialise() {
	if v.initialised {
		return
	}
	v.root.Add(v.page.SiteName, v.page.WWWRoot, TypeCustom, KeyBrandNode, "brand")

	// Copies only: the entries' own children are not wanted up here.
	sel := SelectLeafNodes(v.sources.Main, v.opts.layouts.Get(LayoutPrimary))
	for _, d := range attachSelection(v.root, sel, true) {
		if v.opts.log != nil {
			v.opts.log.Debug("primary navigation: dropped nested node without parent", "key", d.NodeKey)
		}
	}

	if v.sources.Settings != nil {
		if admin := v.sources.Settings.Find(KeySiteAdminRoot, TypeSiteAdmin); admin != nil {
			v.root.Add(admin.Text, admin.Action, TypeCustom, KeySiteAdminNode, admin.Icon)
		}
	}

	v.active = markActive(v.root, v.page.ActiveURL())
	v.initialised = true
}
