// Package style holds the menu chrome styles record and projects it onto
// presentation declarations.
package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnknownSurface  = errors.New("unknown style surface")
	ErrUnknownProperty = errors.New("unknown style property")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidOpacity  = errors.New("invalid opacity")
)

// Surface names a stylable region of the menu.
type Surface string

const (
	SurfaceMenuItem  Surface = "menuItem"
	SurfaceTitle     Surface = "title"
	SurfaceEmptyHint Surface = "emptyHint"
	SurfaceMenuPanel Surface = "menuPanel"
)

// Surfaces returns every surface in projection order.
func Surfaces() []Surface {
	return []Surface{SurfaceMenuItem, SurfaceTitle, SurfaceEmptyHint, SurfaceMenuPanel}
}

// Property names a single style field of a surface, as persisted.
type Property string

const (
	PropBackground Property = "bg"
	PropColor      Property = "color"
	PropOpacity    Property = "opacity"
	PropBorder     Property = "border"
)

// Properties returns the properties a surface supports.
func (s Surface) Properties() []Property {
	switch s {
	case SurfaceMenuItem:
		return []Property{PropBackground, PropColor, PropOpacity}
	case SurfaceTitle:
		return []Property{PropColor, PropBorder}
	case SurfaceEmptyHint:
		return []Property{PropColor}
	case SurfaceMenuPanel:
		return []Property{PropBackground, PropOpacity, PropBorder}
	default:
		return nil
	}
}

// Supports reports whether p is a property of s.
func (s Surface) Supports(p Property) bool {
	for _, candidate := range s.Properties() {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseSurface validates a surface name.
func ParseSurface(name string) (Surface, error) {
	for _, s := range Surfaces() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSurface, name)
}

// SurfaceStyle is the style of one surface. Empty strings and a nil opacity
// mean "absent".
type SurfaceStyle struct {
	Background string   `json:"bg,omitempty" yaml:"bg,omitempty"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Border     string   `json:"border,omitempty" yaml:"border,omitempty"`

	// Extra holds persisted properties this version does not know about.
	Extra map[string]any `json:"-" yaml:"-"`
}

// Styles is the menu styles record.
type Styles struct {
	MenuItem  SurfaceStyle `json:"menuItem" yaml:"menuItem"`
	Title     SurfaceStyle `json:"title" yaml:"title"`
	EmptyHint SurfaceStyle `json:"emptyHint" yaml:"emptyHint"`
	MenuPanel SurfaceStyle `json:"menuPanel" yaml:"menuPanel"`

	// Extra holds persisted surfaces this version does not know about.
	Extra map[string]any `json:"-" yaml:"-"`
}

// Defaults returns the library default styles with every field present.
func Defaults() Styles {
	return Styles{
		MenuItem: SurfaceStyle{
			Background: "#3C3C3C",
			Color:      "#FFFFFF",
			Opacity:    Opacity(0.7),
		},
		Title: SurfaceStyle{
			Color:  "#CCCCCC",
			Border: "#444444",
		},
		EmptyHint: SurfaceStyle{
			Color: "#666666",
		},
		MenuPanel: SurfaceStyle{
			Background: "#000000",
			Opacity:    Opacity(0.85),
			Border:     "#555555",
		},
	}
}

// Opacity returns a pointer to a clamped opacity value.
func Opacity(v float64) *float64 {
	c := ClampOpacity(v)
	return &c
}

// ClampOpacity clamps v to [0,1]. NaN becomes 1.
func ClampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Max(0, math.Min(1, v))
}

// ValidColor reports whether v is a #RRGGBB color.
func ValidColor(v string) bool {
	if len(v) != 7 || v[0] != '#' {
		return false
	}
	_, err := colorful.Hex(v)
	return err == nil
}

// Get returns the style of a surface.
func (s Styles) Get(surface Surface) SurfaceStyle {
	switch surface {
	case SurfaceMenuItem:
		return s.MenuItem
	case SurfaceTitle:
		return s.Title
	case SurfaceEmptyHint:
		return s.EmptyHint
	case SurfaceMenuPanel:
		return s.MenuPanel
	}
	return SurfaceStyle{}
}

func (s *Styles) put(surface Surface, ss SurfaceStyle) {
	switch surface {
	case SurfaceMenuItem:
		s.MenuItem = ss
	case SurfaceTitle:
		s.Title = ss
	case SurfaceEmptyHint:
		s.EmptyHint = ss
	case SurfaceMenuPanel:
		s.MenuPanel = ss
	}
}

// Value returns the string form of a property and whether it is present.
func (ss SurfaceStyle) Value(p Property) (string, bool) {
	switch p {
	case PropBackground:
		return ss.Background, ss.Background != ""
	case PropColor:
		return ss.Color, ss.Color != ""
	case PropBorder:
		return ss.Border, ss.Border != ""
	case PropOpacity:
		if ss.Opacity == nil {
			return "", false
		}
		return strconv.FormatFloat(*ss.Opacity, 'f', -1, 64), true
	}
	return "", false
}

// Set updates exactly one property of one surface. The receiver is not
// modified; invalid input returns the styles unchanged with an error.
func (s Styles) Set(surface Surface, p Property, value any) (Styles, error) {
	if !surface.Supports(p) {
		if surface.Properties() == nil {
			return s, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
		}
		return s, fmt.Errorf("%w: %s.%s", ErrUnknownProperty, surface, p)
	}

	ss := s.Get(surface)
	switch p {
	case PropOpacity:
		op, err := parseOpacity(value)
		if err != nil {
			return s, err
		}
		ss.Opacity = &op
	default:
		str, ok := value.(string)
		if !ok {
			return s, fmt.Errorf("%w: %v", ErrInvalidColor, value)
		}
		str = strings.TrimSpace(str)
		if !ValidColor(str) {
			return s, fmt.Errorf("%w: %q", ErrInvalidColor, str)
		}
		switch p {
		case PropBackground:
			ss.Background = str
		case PropColor:
			ss.Color = str
		case PropBorder:
			ss.Border = str
		}
	}

	s.put(surface, ss)
	return s, nil
}

func parseOpacity(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, fmt.Errorf("%w: NaN", ErrInvalidOpacity)
		}
		return ClampOpacity(v), nil
	case float32:
		return parseOpacity(float64(v))
	case int:
		return ClampOpacity(float64(v)), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOpacity, v)
		}
		return parseOpacity(f)
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidOpacity, value)
	}
}

// Merge applies a persisted-shape patch field by field. Surfaces and
// properties missing from the patch keep their current values; invalid
// values of known properties are ignored. Unknown surfaces and properties
// are kept in Extra.
func (s Styles) Merge(patch map[string]any) Styles {
	for key, value := range patch {
		surface, err := ParseSurface(key)
		if err != nil {
			s.Extra = withExtra(s.Extra, key, value)
			continue
		}
		raw, ok := asMap(value)
		if !ok {
			continue
		}
		for name, v := range raw {
			p := Property(name)
			if surface.Supports(p) {
				if next, err := s.Set(surface, p, v); err == nil {
					s = next
				}
				continue
			}
			ss := s.Get(surface)
			ss.Extra = withExtra(ss.Extra, name, v)
			s.put(surface, ss)
		}
	}
	return s
}

// FromMap builds styles from the persisted shape. Absent or invalid fields
// stay absent.
func FromMap(raw map[string]any) Styles {
	return Styles{}.Merge(raw)
}

// Map returns the persisted shape holding only present fields.
func (s Styles) Map() map[string]any {
	out := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		out[k] = plainValue(v)
	}
	for _, surface := range Surfaces() {
		ss := s.Get(surface)
		fields := make(map[string]any, len(ss.Extra)+4)
		for k, v := range ss.Extra {
			fields[k] = plainValue(v)
		}
		if ss.Background != "" {
			fields[string(PropBackground)] = ss.Background
		}
		if ss.Color != "" {
			fields[string(PropColor)] = ss.Color
		}
		if ss.Opacity != nil {
			fields[string(PropOpacity)] = *ss.Opacity
		}
		if ss.Border != "" {
			fields[string(PropBorder)] = ss.Border
		}
		out[string(surface)] = fields
	}
	return out
}

// Resolved returns a copy where every absent field carries its default.
func (s Styles) Resolved() Styles {
	def := Defaults()
	for _, surface := range Surfaces() {
		ss := s.Get(surface)
		d := def.Get(surface)
		if ss.Background == "" {
			ss.Background = d.Background
		}
		if ss.Color == "" {
			ss.Color = d.Color
		}
		if ss.Opacity == nil && d.Opacity != nil {
			op := *d.Opacity
			ss.Opacity = &op
		}
		if ss.Border == "" {
			ss.Border = d.Border
		}
		s.put(surface, ss)
	}
	return s
}

// Clone returns a deep copy.
func (s Styles) Clone() Styles {
	s.Extra = plainMap(s.Extra)
	for _, surface := range Surfaces() {
		ss := s.Get(surface)
		ss.Extra = plainMap(ss.Extra)
		if ss.Opacity != nil {
			op := *ss.Opacity
			ss.Opacity = &op
		}
		s.put(surface, ss)
	}
	return s
}
