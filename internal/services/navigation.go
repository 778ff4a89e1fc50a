package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	rediscache "github.com/yungbote/neurobridge-navigation/internal/clients/redis"
	"github.com/yungbote/neurobridge-navigation/internal/data/repos"
	types "github.com/yungbote/neurobridge-navigation/internal/domain"
	"github.com/yungbote/neurobridge-navigation/internal/navigation"
	"github.com/yungbote/neurobridge-navigation/internal/observability"
	"github.com/yungbote/neurobridge-navigation/internal/platform/apierr"
	"github.com/yungbote/neurobridge-navigation/internal/platform/ctxutil"
	"github.com/yungbote/neurobridge-navigation/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

const tracerName = "neurobridge-navigation/services"

// PageInput describes the page being rendered. Site-wide values (front page
// course, www root, site name) come from configuration.
type PageInput struct {
	Level        string `json:"level"`
	CourseID     int64  `json:"course_id,omitempty"`
	ModuleID     int64  `json:"module_id,omitempty"`
	ActivityName string `json:"activity_name,omitempty"`
	URL          string `json:"url,omitempty"`
	FullURL      string `json:"full_url,omitempty"`
}

type PageRequest struct {
	Page     PageInput            `json:"page"`
	Settings *navigation.NodeView `json:"settings,omitempty"`
	Main     *navigation.NodeView `json:"main,omitempty"`
	// MoreAfter > 0 splits the top level into inline entries and a "More"
	// menu; 0 falls back to the configured default.
	MoreAfter int `json:"more_after,omitempty"`
}

type OverflowView struct {
	Visible      []navigation.NodeView `json:"visible"`
	More         []navigation.NodeView `json:"more"`
	ActiveInMore bool                  `json:"active_in_more"`
}

type BuildResult struct {
	View              navigation.ViewName  `json:"view"`
	Tree              navigation.NodeView  `json:"tree"`
	Active            string               `json:"active,omitempty"`
	Dropped           []navigation.Dropped `json:"dropped,omitempty"`
	Overflow          *OverflowView        `json:"overflow,omitempty"`
	ExtensionsApplied int                  `json:"extensions_applied,omitempty"`
}

// LayoutView is a resolved position map. Origin is "override" when a stored
// override supplied it and "default" otherwise.
type LayoutView struct {
	navigation.LayoutKey
	Origin  string                 `json:"origin"`
	Entries []navigation.Placement `json:"entries"`
}

type ExtensionInput struct {
	ContextLevel string         `json:"context_level"`
	InstanceID   int64          `json:"instance_id"`
	ParentKey    string         `json:"parent_key"`
	ParentType   string         `json:"parent_type"`
	NodeKey      string         `json:"node_key"`
	NodeType     string         `json:"node_type"`
	Text         string         `json:"text"`
	Action       string         `json:"action"`
	Icon         string         `json:"icon"`
	Hidden       bool           `json:"hidden"`
	SortOrder    int            `json:"sort_order"`
	Component    string         `json:"component"`
	Meta         datatypes.JSON `json:"meta,omitempty"`
}

type NavigationConfig struct {
	SiteHomeCourseID int64
	WWWRoot          string
	SiteName         string
	DefaultMoreAfter int
}

type NavigationService interface {
	BuildSecondary(ctx context.Context, req PageRequest) (*BuildResult, error)
	BuildPrimary(ctx context.Context, req PageRequest) (*BuildResult, error)

	GetLayout(ctx context.Context, view, level, source string) (*LayoutView, error)
	PutLayout(ctx context.Context, view, level, source string, entries []navigation.Placement) (*LayoutView, error)
	DeleteLayout(ctx context.Context, view, level, source string) error
	WarmLayouts(ctx context.Context) (int, error)

	ListExtensions(ctx context.Context, level string, instanceID int64) ([]*types.NavExtension, error)
	GetExtension(ctx context.Context, id uuid.UUID) (*types.NavExtension, error)
	CreateExtension(ctx context.Context, in ExtensionInput) (*types.NavExtension, error)
	DeleteExtension(ctx context.Context, id uuid.UUID) error
}

type navigationService struct {
	log        *logger.Logger
	cfg        NavigationConfig
	base       navigation.LayoutSet
	extRepo    repos.NavExtensionRepo
	layoutRepo repos.NavLayoutRepo
	cache      rediscache.LayoutCache
	tracer     trace.Tracer
	metrics    *observability.Metrics
}

// NewNavigationService builds the service. base holds the layouts read from
// the layout file (or the defaults); cache may be nil.
func NewNavigationService(
	baseLog *logger.Logger,
	cfg NavigationConfig,
	base navigation.LayoutSet,
	extRepo repos.NavExtensionRepo,
	layoutRepo repos.NavLayoutRepo,
	cache rediscache.LayoutCache,
) NavigationService {
	if base == nil {
		base = navigation.DefaultLayouts()
	}
	return &navigationService{
		log:        baseLog.With("service", "NavigationService"),
		cfg:        cfg,
		base:       base,
		extRepo:    extRepo,
		layoutRepo: layoutRepo,
		cache:      cache,
		tracer:     otel.Tracer(tracerName),
		metrics:    observability.Current(),
	}
}

func (s *navigationService) BuildSecondary(ctx context.Context, req PageRequest) (result *BuildResult, err error) {
	ctx, span := s.tracer.Start(ctx, "navigation.BuildSecondary")
	start := time.Now()
	defer func() {
		s.observeBuild(navigation.ViewSecondary, req.Page.Level, start, result, err)
		endSpan(span, err)
	}()

	page, err := s.pageContext(req.Page)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("nav.level", string(page.Level)),
		attribute.Int64("nav.course_id", page.CourseID),
		attribute.Int64("nav.module_id", page.ModuleID),
	)
	sources, err := importSources(req)
	if err != nil {
		return nil, err
	}

	var keys []navigation.LayoutKey
	var instanceID int64
	switch page.Level {
	case navigation.LevelCourse:
		keys = []navigation.LayoutKey{navigation.LayoutCourseSettings, navigation.LayoutCourseNavigation}
		instanceID = page.CourseID
	case navigation.LevelModule:
		keys = []navigation.LayoutKey{navigation.LayoutModuleSettings}
		instanceID = page.ModuleID
	}

	var (
		layouts navigation.LayoutSet
		exts    []*types.NavExtension
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := s.resolveLayouts(gctx, keys...)
		if err != nil {
			return err
		}
		layouts = set
		return nil
	})
	g.Go(func() error {
		if s.extRepo == nil || sources.Settings == nil {
			return nil
		}
		list, err := s.extRepo.ListForContext(dbctx.New(gctx), string(page.Level), instanceID)
		if err != nil {
			return fmt.Errorf("load extensions: %w", err)
		}
		exts = list
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("BuildSecondary: load failed", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, err
	}

	applied := s.applyExtensions(ctx, page.Level, sources.Settings, exts)

	view := navigation.NewSecondaryView(page, sources,
		navigation.WithLayouts(layouts),
		navigation.WithLogger(s.log),
	)
	view.Initialise()

	result = s.result(navigation.ViewSecondary, view.Root(), view.Active(), req.MoreAfter)
	result.Dropped = view.Dropped()
	result.ExtensionsApplied = applied
	span.SetAttributes(
		attribute.Int("nav.entries", view.Root().Len()),
		attribute.Int("nav.dropped", len(result.Dropped)),
	)
	return result, nil
}

func (s *navigationService) BuildPrimary(ctx context.Context, req PageRequest) (result *BuildResult, err error) {
	ctx, span := s.tracer.Start(ctx, "navigation.BuildPrimary")
	start := time.Now()
	defer func() {
		s.observeBuild(navigation.ViewPrimary, req.Page.Level, start, result, err)
		endSpan(span, err)
	}()

	if strings.TrimSpace(req.Page.Level) == "" {
		req.Page.Level = string(navigation.LevelSystem)
	}
	page, err := s.pageContext(req.Page)
	if err != nil {
		return nil, err
	}
	sources, err := importSources(req)
	if err != nil {
		return nil, err
	}
	layouts, err := s.resolveLayouts(ctx, navigation.LayoutPrimary)
	if err != nil {
		return nil, err
	}

	view := navigation.NewPrimaryView(page, sources,
		navigation.WithLayouts(layouts),
		navigation.WithLogger(s.log),
	)
	view.Initialise()

	result = s.result(navigation.ViewPrimary, view.Root(), view.Active(), req.MoreAfter)
	span.SetAttributes(attribute.Int("nav.entries", view.Root().Len()))
	return result, nil
}

func (s *navigationService) GetLayout(ctx context.Context, view, level, source string) (*LayoutView, error) {
	key, err := navigation.ParseLayoutKey(view, level, source)
	if err != nil {
		return nil, apierr.BadRequest("invalid_layout_key", err)
	}
	m, override, err := s.resolveLayout(ctx, key)
	if err != nil {
		return nil, err
	}
	return layoutView(key, m, override), nil
}

func (s *navigationService) PutLayout(ctx context.Context, view, level, source string, entries []navigation.Placement) (*LayoutView, error) {
	key, err := navigation.ParseLayoutKey(view, level, source)
	if err != nil {
		return nil, apierr.BadRequest("invalid_layout_key", err)
	}
	m, err := navigation.PositionMapFromEntries(entries)
	if err != nil {
		return nil, apierr.BadRequest("invalid_layout", err)
	}
	if s.layoutRepo == nil {
		return nil, fmt.Errorf("layout storage not configured")
	}
	raw, err := json.Marshal(m.Entries())
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	if _, err := s.layoutRepo.Upsert(dbctx.New(ctx), &types.NavLayout{
		View:    string(key.View),
		Level:   string(key.Level),
		Source:  string(key.Source),
		Entries: datatypes.JSON(raw),
	}); err != nil {
		s.log.Error("PutLayout: upsert failed", append(ctxutil.LogFields(ctx), "layout", key.String(), "error", err)...)
		return nil, fmt.Errorf("store layout: %w", err)
	}
	s.invalidate(ctx, key)
	s.log.Info("Layout override stored", "layout", key.String(), "entries", m.Len())
	return layoutView(key, m, true), nil
}

func (s *navigationService) DeleteLayout(ctx context.Context, view, level, source string) error {
	key, err := navigation.ParseLayoutKey(view, level, source)
	if err != nil {
		return apierr.BadRequest("invalid_layout_key", err)
	}
	if s.layoutRepo == nil {
		return apierr.NotFound("layout_not_found", nil)
	}
	deleted, err := s.layoutRepo.Delete(dbctx.New(ctx), string(key.View), string(key.Level), string(key.Source))
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	s.invalidate(ctx, key)
	if !deleted {
		return apierr.NotFound("layout_not_found", fmt.Errorf("no override for %s", key))
	}
	s.log.Info("Layout override removed", "layout", key.String())
	return nil
}

// WarmLayouts loads every stored override in one query and primes the cache
// with it. Known layouts without an override get a negative entry. It returns
// the number of overrides cached.
func (s *navigationService) WarmLayouts(ctx context.Context) (int, error) {
	if s.cache == nil || s.layoutRepo == nil {
		return 0, nil
	}
	rows, err := s.layoutRepo.List(dbctx.New(ctx))
	if err != nil {
		return 0, fmt.Errorf("list layouts: %w", err)
	}
	stored := make(map[navigation.LayoutKey]struct{}, len(rows))
	warmed := 0
	for _, row := range rows {
		key, err := navigation.ParseLayoutKey(row.View, row.Level, row.Source)
		if err != nil {
			s.log.Warn("Skipping stored layout with unknown key", "view", row.View, "level", row.Level, "source", row.Source)
			continue
		}
		if _, err := decodeEntries(row.Entries); err != nil {
			s.log.Warn("Skipping invalid stored layout", "layout", key.String(), "error", err)
			continue
		}
		stored[key] = struct{}{}
		s.cacheSet(ctx, key, row.Entries)
		warmed++
	}
	for _, key := range navigation.KnownLayouts() {
		if _, ok := stored[key]; !ok {
			s.cacheSet(ctx, key, nil)
		}
	}
	return warmed, nil
}

func (s *navigationService) GetExtension(ctx context.Context, id uuid.UUID) (*types.NavExtension, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("invalid_id", errors.New("missing extension id"))
	}
	if s.extRepo == nil {
		return nil, apierr.NotFound("extension_not_found", nil)
	}
	ext, err := s.extRepo.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("get extension: %w", err)
	}
	if ext == nil {
		return nil, apierr.NotFound("extension_not_found", fmt.Errorf("extension %s", id))
	}
	return ext, nil
}

func (s *navigationService) ListExtensions(ctx context.Context, level string, instanceID int64) ([]*types.NavExtension, error) {
	lvl := navigation.ParseContextLevel(level)
	if lvl == "" {
		return nil, apierr.BadRequest("missing_level", errors.New("level is required"))
	}
	if instanceID < 0 {
		return nil, apierr.BadRequest("invalid_instance_id", errors.New("instance_id must not be negative"))
	}
	if s.extRepo == nil {
		return []*types.NavExtension{}, nil
	}
	out, err := s.extRepo.ListForContext(dbctx.New(ctx), string(lvl), instanceID)
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	return out, nil
}

func (s *navigationService) CreateExtension(ctx context.Context, in ExtensionInput) (*types.NavExtension, error) {
	ext, err := extensionFromInput(in)
	if err != nil {
		return nil, apierr.BadRequest("invalid_extension", err)
	}
	if s.extRepo == nil {
		return nil, fmt.Errorf("extension storage not configured")
	}
	created, err := s.extRepo.Create(dbctx.New(ctx), []*types.NavExtension{ext})
	if err != nil {
		s.log.Error("CreateExtension: insert failed", append(ctxutil.LogFields(ctx), "node_key", ext.NodeKey, "error", err)...)
		return nil, fmt.Errorf("create extension: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("create extension: nothing stored")
	}
	s.log.Info("Navigation extension registered",
		"id", created[0].ID,
		"context_level", created[0].ContextLevel,
		"node_key", created[0].NodeKey,
	)
	return created[0], nil
}

func (s *navigationService) DeleteExtension(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apierr.BadRequest("invalid_id", errors.New("missing extension id"))
	}
	if s.extRepo == nil {
		return apierr.NotFound("extension_not_found", nil)
	}
	deleted, err := s.extRepo.Delete(dbctx.New(ctx), id)
	if err != nil {
		return fmt.Errorf("delete extension: %w", err)
	}
	if !deleted {
		return apierr.NotFound("extension_not_found", fmt.Errorf("extension %s", id))
	}
	return nil
}

func (s *navigationService) pageContext(in PageInput) (navigation.PageContext, error) {
	lvl := navigation.ParseContextLevel(in.Level)
	if lvl == "" {
		return navigation.PageContext{}, apierr.BadRequest("missing_level", errors.New("page.level is required"))
	}
	if in.CourseID < 0 || in.ModuleID < 0 {
		return navigation.PageContext{}, apierr.BadRequest("invalid_page", errors.New("ids must not be negative"))
	}
	return navigation.PageContext{
		Level:            lvl,
		CourseID:         in.CourseID,
		ModuleID:         in.ModuleID,
		SiteHomeCourseID: s.cfg.SiteHomeCourseID,
		ActivityName:     strings.TrimSpace(in.ActivityName),
		URL:              in.URL,
		FullURL:          in.FullURL,
		WWWRoot:          s.cfg.WWWRoot,
		SiteName:         s.cfg.SiteName,
	}, nil
}

func importSources(req PageRequest) (navigation.Sources, error) {
	var src navigation.Sources
	if req.Settings != nil {
		n, err := navigation.Import(*req.Settings)
		if err != nil {
			return src, apierr.BadRequest("invalid_settings_tree", err)
		}
		src.Settings = n
	}
	if req.Main != nil {
		n, err := navigation.Import(*req.Main)
		if err != nil {
			return src, apierr.BadRequest("invalid_main_tree", err)
		}
		src.Main = n
	}
	return src, nil
}

// applyExtensions adds each extension under its parent in the settings tree
// and returns how many of them will show up in the view. An extension only
// counts when its parent lies under the part of the tree the level reads:
// modulesettings for modules, the site admin root for the system level, and
// anything below the settings root for courses. Others are skipped.
func (s *navigationService) applyExtensions(ctx context.Context, level navigation.ContextLevel, settings *navigation.Node, exts []*types.NavExtension) int {
	if settings == nil || len(exts) == 0 {
		return 0
	}
	var anchor *navigation.Node
	if key, typ, ok := defaultExtensionParent(level); ok {
		if anchor = settings.Find(key, typ); anchor == nil {
			return 0
		}
	}
	applied := 0
	for _, e := range exts {
		if e == nil {
			continue
		}
		typ, err := navigation.ParseNodeType(e.NodeType)
		if err != nil {
			s.log.Warn("Skipping extension with bad node type", "id", e.ID, "node_type", e.NodeType)
			continue
		}
		var parent *navigation.Node
		switch {
		case e.ParentKey == "":
			parent = anchor
		case e.ParentKey == settings.Key:
			parent = settings
		default:
			ptyp, err := navigation.ParseNodeType(e.ParentType)
			if err != nil {
				s.log.Warn("Skipping extension with bad parent type", "id", e.ID, "parent_type", e.ParentType)
				continue
			}
			parent = settings.Find(e.ParentKey, ptyp)
		}
		if parent == nil || !reachesView(parent, settings, anchor) {
			s.log.Debug("Extension parent not reachable from the view", append(ctxutil.LogFields(ctx),
				"id", e.ID, "context_level", string(level), "parent_key", e.ParentKey)...)
			continue
		}
		n := parent.Add(e.Text, e.Action, typ, e.NodeKey, e.Icon)
		if n == nil {
			continue
		}
		n.Hidden = e.Hidden
		applied++
	}
	return applied
}

// defaultExtensionParent is the node an extension without a parent key hangs
// from. Course pages have none: their view only carries placed nodes.
func defaultExtensionParent(level navigation.ContextLevel) (string, navigation.NodeType, bool) {
	switch level {
	case navigation.LevelModule:
		return navigation.KeyModuleSettings, navigation.TypeSetting, true
	case navigation.LevelSystem:
		return navigation.KeySiteAdminRoot, navigation.TypeSiteAdmin, true
	}
	return "", "", false
}

func reachesView(parent, settings, anchor *navigation.Node) bool {
	if anchor == nil {
		return parent != settings
	}
	for n := parent; n != nil; n = n.Parent() {
		if n == anchor {
			return true
		}
	}
	return false
}

func (s *navigationService) resolveLayouts(ctx context.Context, keys ...navigation.LayoutKey) (navigation.LayoutSet, error) {
	if len(keys) == 0 {
		return s.base, nil
	}
	maps := make([]*navigation.PositionMap, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			m, _, err := s.resolveLayout(gctx, key)
			if err != nil {
				return err
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	set := s.base
	for i, key := range keys {
		set = set.With(key, maps[i])
	}
	return set, nil
}

// resolveLayout looks key up in the cache, then in stored overrides, then
// falls back to the base set. The bool reports whether an override was used.
func (s *navigationService) resolveLayout(ctx context.Context, key navigation.LayoutKey) (*navigation.PositionMap, bool, error) {
	if s.cache != nil {
		raw, hit, err := s.cache.Get(ctx, key.String())
		switch {
		case err != nil:
			s.log.Warn("Layout cache read failed", "layout", key.String(), "error", err)
		case hit && len(raw) == 0:
			s.metrics.IncLayoutLookup("cache")
			return s.base.Get(key), false, nil
		case hit:
			if m, err := decodeEntries(raw); err == nil {
				s.metrics.IncLayoutLookup("cache")
				return m, true, nil
			}
			s.log.Warn("Discarding unreadable cached layout", "layout", key.String())
		}
	}

	if s.layoutRepo == nil {
		s.metrics.IncLayoutLookup("default")
		return s.base.Get(key), false, nil
	}
	row, err := s.layoutRepo.Get(dbctx.New(ctx), string(key.View), string(key.Level), string(key.Source))
	if err != nil {
		return nil, false, fmt.Errorf("load layout %s: %w", key, err)
	}
	if row == nil {
		s.cacheSet(ctx, key, nil)
		s.metrics.IncLayoutLookup("default")
		return s.base.Get(key), false, nil
	}
	m, err := decodeEntries(row.Entries)
	if err != nil {
		s.log.Error("Stored layout override is invalid, using default", "layout", key.String(), "error", err)
		return s.base.Get(key), false, nil
	}
	s.cacheSet(ctx, key, row.Entries)
	s.metrics.IncLayoutLookup("override")
	return m, true, nil
}

func (s *navigationService) observeBuild(view navigation.ViewName, level string, start time.Time, res *BuildResult, err error) {
	if s.metrics == nil {
		return
	}
	status, dropped, applied := "ok", 0, 0
	if err != nil {
		status = "error"
	}
	if res != nil {
		dropped, applied = len(res.Dropped), res.ExtensionsApplied
	}
	var lvl string
	switch l := navigation.ParseContextLevel(level); l {
	case navigation.LevelSystem, navigation.LevelCourse, navigation.LevelModule,
		navigation.LevelCategory, navigation.LevelUser, navigation.LevelBlock:
		lvl = string(l)
	default:
		lvl = "other"
	}
	s.metrics.ObserveBuild(string(view), lvl, status, time.Since(start), dropped, applied)
}

func (s *navigationService) cacheSet(ctx context.Context, key navigation.LayoutKey, raw []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key.String(), raw); err != nil {
		s.log.Warn("Layout cache write failed", "layout", key.String(), "error", err)
	}
}

func (s *navigationService) invalidate(ctx context.Context, key navigation.LayoutKey) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key.String()); err != nil {
		s.log.Warn("Layout cache invalidation failed", "layout", key.String(), "error", err)
	}
}

func (s *navigationService) result(view navigation.ViewName, root, active *navigation.Node, moreAfter int) *BuildResult {
	res := &BuildResult{
		View: view,
		Tree: navigation.Export(root),
	}
	if active != nil {
		res.Active = active.Key
	}
	if moreAfter <= 0 {
		moreAfter = s.cfg.DefaultMoreAfter
	}
	if moreAfter > 0 {
		split := navigation.SplitOverflow(root, moreAfter)
		res.Overflow = &OverflowView{
			Visible:      navigation.ExportList(split.Visible),
			More:         navigation.ExportList(split.More),
			ActiveInMore: split.ActiveInMore,
		}
	}
	return res
}

func decodeEntries(raw []byte) (*navigation.PositionMap, error) {
	var entries []navigation.Placement
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return navigation.PositionMapFromEntries(entries)
}

func layoutView(key navigation.LayoutKey, m *navigation.PositionMap, override bool) *LayoutView {
	origin := "default"
	if override {
		origin = "override"
	}
	entries := m.Entries()
	if entries == nil {
		entries = []navigation.Placement{}
	}
	return &LayoutView{LayoutKey: key, Origin: origin, Entries: entries}
}

func extensionFromInput(in ExtensionInput) (*types.NavExtension, error) {
	lvl := navigation.ParseContextLevel(in.ContextLevel)
	switch lvl {
	case navigation.LevelSystem, navigation.LevelCourse, navigation.LevelModule:
	default:
		return nil, fmt.Errorf("context_level %q does not have a secondary navigation", in.ContextLevel)
	}
	if in.InstanceID < 0 {
		return nil, errors.New("instance_id must not be negative")
	}
	key := strings.TrimSpace(in.NodeKey)
	if key == "" {
		return nil, errors.New("node_key is required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, errors.New("text is required")
	}
	typ, err := navigation.ParseNodeType(in.NodeType)
	if err != nil {
		return nil, err
	}
	parentKey := strings.TrimSpace(in.ParentKey)
	var ptyp navigation.NodeType
	if parentKey != "" {
		if ptyp, err = navigation.ParseNodeType(in.ParentType); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
	} else {
		var ok bool
		if parentKey, ptyp, ok = defaultExtensionParent(lvl); !ok {
			return nil, fmt.Errorf("parent_key is required for %s extensions", lvl)
		}
	}
	return &types.NavExtension{
		ContextLevel: string(lvl),
		InstanceID:   in.InstanceID,
		ParentKey:    parentKey,
		ParentType:   string(ptyp),
		NodeKey:      key,
		NodeType:     string(typ),
		Text:         strings.TrimSpace(in.Text),
		Action:       strings.TrimSpace(in.Action),
		Icon:         strings.TrimSpace(in.Icon),
		Hidden:       in.Hidden,
		SortOrder:    in.SortOrder,
		Component:    strings.TrimSpace(in.Component),
		Meta:         in.Meta,
	}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
