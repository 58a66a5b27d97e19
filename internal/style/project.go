package style

import (
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Selectors of the menu regions each surface targets.
const (
	SelectorMenuPanel = "#quick-reply-menu"
	SelectorMenuItem  = "#quick-reply-menu .quick-reply-item"
	SelectorTitle     = "#quick-reply-menu .quick-reply-list-title"
	SelectorEmptyHint = "#quick-reply-menu .quick-reply-empty"
)

// Declaration is a single presentation attribute for a target.
type Declaration struct {
	Surface  Surface
	Selector string
	Property string
	Value    string
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s { %s: %s }", d.Selector, d.Property, d.Value)
}

// Project returns the declarations for every surface. Absent fields project
// their default value.
func Project(s Styles) []Declaration {
	decls := make([]Declaration, 0, 8)
	for _, surface := range Surfaces() {
		decls = append(decls, ProjectSurface(s, surface)...)
	}
	return decls
}

// ProjectSurface returns the declarations of one surface only.
func ProjectSurface(s Styles, surface Surface) []Declaration {
	ss := s.Resolved().Get(surface)

	switch surface {
	case SurfaceMenuItem:
		return []Declaration{
			{surface, SelectorMenuItem, "background-color", RGBA(ss.Background, opacityOf(ss))},
			{surface, SelectorMenuItem, "color", ss.Color},
		}
	case SurfaceTitle:
		return []Declaration{
			{surface, SelectorTitle, "color", ss.Color},
			{surface, SelectorTitle, "border-bottom-color", ss.Border},
		}
	case SurfaceEmptyHint:
		return []Declaration{
			{surface, SelectorEmptyHint, "color", ss.Color},
		}
	case SurfaceMenuPanel:
		return []Declaration{
			{surface, SelectorMenuPanel, "background-color", RGBA(ss.Background, opacityOf(ss))},
			{surface, SelectorMenuPanel, "border-color", ss.Border},
		}
	}
	return nil
}

// Reset returns the declarations that restore every surface to defaults.
func Reset() []Declaration {
	return Project(Defaults())
}

func opacityOf(ss SurfaceStyle) float64 {
	if ss.Opacity == nil {
		return 1
	}
	return *ss.Opacity
}

// RGBA renders a hex color with an alpha channel as a CSS rgba() value.
// Unparseable colors render as black.
func RGBA(hex string, alpha float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{}
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(ClampOpacity(alpha), 'f', -1, 64))
}
