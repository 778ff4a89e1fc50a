package navigation

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LayoutDocument is the on-disk form of a set of layout overrides:
//
//	layouts:
//	  - view: secondary
//	    level: course
//	    source: settings
//	    entries:
//	      - {type: setting, key: editsettings, position: 0}
//	      - {type: setting, key: gradebooksetup, position: 2.1}
type LayoutDocument struct {
	Layouts []LayoutSection `yaml:"layouts" json:"layouts"`
}

type LayoutSection struct {
	LayoutKey `yaml:",inline"`
	Entries   []Placement `yaml:"entries" json:"entries"`
}

// DecodeLayouts reads a YAML layout document and returns the defaults with
// every listed section replaced.
func DecodeLayouts(r io.Reader) (LayoutSet, error) {
	var doc LayoutDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}
	set := DefaultLayouts()
	for i, sec := range doc.Layouts {
		key, err := ParseLayoutKey(string(sec.View), string(sec.Level), string(sec.Source))
		if err != nil {
			return nil, fmt.Errorf("layout %d: %w", i, err)
		}
		m, err := PositionMapFromEntries(sec.Entries)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", key, err)
		}
		set[key] = m
	}
	return set, nil
}

func LoadLayoutFile(path string) (LayoutSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout file: %w", err)
	}
	defer f.Close()
	return DecodeLayouts(f)
}
