package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidPosition = errors.New("invalid position")

// Position orders a node among its siblings. Integer positions place a node at
// the top level of the view; a fractional position such as 2.1 nests the node
// under whatever was placed at 2. The zero Position is unset.
type Position struct {
	d   decimal.Decimal
	set bool
}

func IntPosition(i int64) Position {
	return Position{d: decimal.NewFromInt(i), set: true}
}

func ParsePosition(raw string) (Position, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Position{}, fmt.Errorf("%w: empty", ErrInvalidPosition)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, raw, err)
	}
	if d.IsNegative() {
		return Position{}, fmt.Errorf("%w: %q is negative", ErrInvalidPosition, raw)
	}
	return Position{d: d, set: true}, nil
}

// MustPosition is ParsePosition for literals in default layouts.
func MustPosition(raw string) Position {
	p, err := ParsePosition(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Key is the canonical text form ("2.10" and "2.1" share a key).
func (p Position) Key() string { return p.d.String() }

func (p Position) String() string { return p.Key() }

// IsSet reports whether the position was parsed or constructed, as opposed to
// left at its zero value by a decoder that never saw the field.
func (p Position) IsSet() bool { return p.set }

func (p Position) Nested() bool { return !p.d.IsInteger() }

// Floor is the position of the parent slot for a nested position.
func (p Position) Floor() Position { return Position{d: p.d.Floor(), set: p.set} }

func (p Position) Cmp(o Position) int { return p.d.Cmp(o.d) }

func (p Position) MarshalJSON() ([]byte, error) {
	return []byte(p.Key()), nil
}

// UnmarshalJSON accepts both 2.1 and "2.1".
func (p *Position) UnmarshalJSON(b []byte) error {
	parsed, err := ParsePosition(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML reads the scalar text as written, so 2.10 is never rounded
// through a float.
func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrInvalidPosition, value.Line)
	}
	parsed, err := ParsePosition(value.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Position) MarshalYAML() (interface{}, error) {
	tag := "!!int"
	if p.Nested() {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: p.Key()}, nil
}
