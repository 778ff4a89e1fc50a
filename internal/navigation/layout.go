package navigation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidLayout = errors.New("invalid layout")

// Placement puts the node (Type, Key) at Position. Parent is set when the
// placement is added to a PositionMap and Position is fractional; assembly
// reads it instead of deriving the parent slot again.
type Placement struct {
	Type     NodeType  `json:"type" yaml:"type"`
	Key      string    `json:"key" yaml:"key"`
	Position Position  `json:"position" yaml:"position"`
	Parent   *Position `json:"-" yaml:"-"`
}

func (p Placement) Nested() bool { return p.Parent != nil }

// PositionMap is an ordered set of placements. Order matters: when two
// placements share a position, the later one wins during leaf selection.
type PositionMap struct {
	entries []Placement
	slots   map[lookupKey]int
}

func NewPositionMap() *PositionMap {
	return &PositionMap{slots: make(map[lookupKey]int)}
}

// Add places (typ, key) at pos. Re-adding the same (typ, key) updates its
// position but keeps its original slot in the iteration order.
func (m *PositionMap) Add(typ NodeType, key string, pos Position) *PositionMap {
	pl := Placement{Type: typ, Key: key, Position: pos}
	if pos.Nested() {
		parent := pos.Floor()
		pl.Parent = &parent
	}
	k := lookupKey{typ: typ, key: key}
	if i, ok := m.slots[k]; ok {
		m.entries[i] = pl
		return m
	}
	m.slots[k] = len(m.entries)
	m.entries = append(m.entries, pl)
	return m
}

// Set is Add with a textual position, for literal layouts.
func (m *PositionMap) Set(typ NodeType, key, pos string) *PositionMap {
	return m.Add(typ, key, MustPosition(pos))
}

func (m *PositionMap) Entries() []Placement {
	if m == nil {
		return nil
	}
	out := make([]Placement, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *PositionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns every key named in the map regardless of type.
func (m *PositionMap) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, m.Len())
	if m == nil {
		return keys
	}
	for _, e := range m.entries {
		keys[e.Key] = struct{}{}
	}
	return keys
}

func (m *PositionMap) Clone() *PositionMap {
	out := NewPositionMap()
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		out.Add(e.Type, e.Key, e.Position)
	}
	return out
}

// Expand substitutes {name} placeholders in keys, e.g.
// "mod_{activity}_useroverrides" with activity=quiz.
func (m *PositionMap) Expand(vars map[string]string) *PositionMap {
	if len(vars) == 0 {
		return m.Clone()
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, val := range vars {
		pairs = append(pairs, "{"+name+"}", val)
	}
	r := strings.NewReplacer(pairs...)
	out := NewPositionMap()
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		out.Add(e.Type, r.Replace(e.Key), e.Position)
	}
	return out
}

// PositionMapFromEntries validates a decoded layout document and builds the
// map in document order.
func PositionMapFromEntries(entries []Placement) (*PositionMap, error) {
	m := NewPositionMap()
	for i, e := range entries {
		if strings.TrimSpace(e.Key) == "" {
			return nil, fmt.Errorf("%w: entry %d has no key", ErrInvalidLayout, i)
		}
		typ, err := ParseNodeType(string(e.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidLayout, i, err)
		}
		if !e.Position.IsSet() {
			return nil, fmt.Errorf("%w: entry %d (%s) has no position", ErrInvalidLayout, i, e.Key)
		}
		m.Add(typ, strings.TrimSpace(e.Key), e.Position)
	}
	return m, nil
}

type ViewName string

const (
	ViewPrimary   ViewName = "primary"
	ViewSecondary ViewName = "secondary"
)

type SourceName string

const (
	SourceSettings   SourceName = "settings"
	SourceNavigation SourceName = "navigation"
)

// LayoutKey names one configurable position map.
type LayoutKey struct {
	View   ViewName     `json:"view" yaml:"view"`
	Level  ContextLevel `json:"level" yaml:"level"`
	Source SourceName   `json:"source" yaml:"source"`
}

var (
	LayoutCourseSettings   = LayoutKey{View: ViewSecondary, Level: LevelCourse, Source: SourceSettings}
	LayoutCourseNavigation = LayoutKey{View: ViewSecondary, Level: LevelCourse, Source: SourceNavigation}
	LayoutModuleSettings   = LayoutKey{View: ViewSecondary, Level: LevelModule, Source: SourceSettings}
	LayoutPrimary          = LayoutKey{View: ViewPrimary, Level: LevelSystem, Source: SourceNavigation}
)

var knownLayouts = []LayoutKey{
	LayoutCourseSettings,
	LayoutCourseNavigation,
	LayoutModuleSettings,
	LayoutPrimary,
}

func KnownLayouts() []LayoutKey {
	out := make([]LayoutKey, len(knownLayouts))
	copy(out, knownLayouts)
	return out
}

func ParseLayoutKey(view, level, source string) (LayoutKey, error) {
	k := LayoutKey{
		View:   ViewName(strings.ToLower(strings.TrimSpace(view))),
		Level:  ContextLevel(strings.ToLower(strings.TrimSpace(level))),
		Source: SourceName(strings.ToLower(strings.TrimSpace(source))),
	}
	for _, known := range knownLayouts {
		if k == known {
			return k, nil
		}
	}
	return LayoutKey{}, fmt.Errorf("%w: unknown layout %s", ErrInvalidLayout, k)
}

func (k LayoutKey) String() string {
	return string(k.View) + "/" + string(k.Level) + "/" + string(k.Source)
}

// LayoutSet holds the position maps the views read from. Missing keys fall
// back to the built-in defaults.
type LayoutSet map[LayoutKey]*PositionMap

func DefaultLayouts() LayoutSet {
	return LayoutSet{
		LayoutCourseSettings:   DefaultCourseSettingsMap(),
		LayoutCourseNavigation: DefaultCourseNavigationMap(),
		LayoutModuleSettings:   DefaultModuleMap(),
		LayoutPrimary:          DefaultPrimaryMap(),
	}
}

// Get returns a private copy of the map for k.
func (s LayoutSet) Get(k LayoutKey) *PositionMap {
	if m, ok := s[k]; ok && m != nil {
		return m.Clone()
	}
	if m, ok := DefaultLayouts()[k]; ok {
		return m
	}
	return NewPositionMap()
}

// With returns a copy of s with k replaced.
func (s LayoutSet) With(k LayoutKey, m *PositionMap) LayoutSet {
	out := make(LayoutSet, len(s)+1)
	for key, val := range s {
		out[key] = val
	}
	out[k] = m
	return out
}

func DefaultCourseSettingsMap() *PositionMap {
	return NewPositionMap().
		Set(TypeContainer, "coursereports", "3").
		Set(TypeContainer, "questionbank", "4").
		Set(TypeSetting, "editsettings", "0").
		Set(TypeSetting, "coursecompletion", "6").
		Set(TypeSetting, "gradebooksetup", "2.1").
		Set(TypeSetting, "outcomes", "2.2")
}

func DefaultCourseNavigationMap() *PositionMap {
	return NewPositionMap().
		Set(TypeContainer, "participants", "1").
		Set(TypeSetting, "badgesview", "7").
		Set(TypeSetting, "competencies", "8").
		Set(TypeSetting, "grades", "2").
		Set(TypeCustom, "contentbank", "5")
}

// DefaultModuleMap uses {activity} placeholders for override pages, which
// are named after the module type.
func DefaultModuleMap() *PositionMap {
	return NewPositionMap().
		Set(TypeSetting, "modedit", "1").
		Set(TypeSetting, "roleoverride", "3").
		Set(TypeSetting, "logreport", "4").
		Set(TypeSetting, "filtermanage", "8").
		Set(TypeSetting, "backup", "9").
		Set(TypeSetting, "rolecheck", "3.1").
		Set(TypeSetting, "restore", "10").
		Set(TypeSetting, "competencybreakdown", "11").
		Set(TypeSetting, "mod_{activity}_useroverrides", "5").
		Set(TypeSetting, "mod_{activity}_groupoverrides", "6").
		Set(TypeSetting, "roleassign", "7").
		Set(TypeCustom, "advgrading", "2")
}

func DefaultPrimaryMap() *PositionMap {
	return NewPositionMap().
		Set(TypeSystem, "myhome", "2").
		Set(TypeSystem, "home", "1").
		Set(TypeSystem, "mycourse", "3")
}
