package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iiroan/qra/internal/style"
)

// MenuTheme holds the lipgloss styles of the overlay menu surfaces.
type MenuTheme struct {
	Item      lipgloss.Style
	Title     lipgloss.Style
	EmptyHint lipgloss.Style
	Panel     lipgloss.Style
}

// NewMenuTheme projects menu styles onto the terminal. Translucent
// backgrounds are blended against the palette background.
func NewMenuTheme(s style.Styles) MenuTheme {
	return themeFromDeclarations(style.Project(s))
}

func themeFromDeclarations(decls []style.Declaration) MenuTheme {
	t := MenuTheme{
		Item:      lipgloss.NewStyle().Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true),
		EmptyHint: lipgloss.NewStyle().Italic(true),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}

	for _, d := range decls {
		c, ok := terminalColor(d.Value)
		if !ok {
			continue
		}
		switch {
		case d.Surface == style.SurfaceMenuItem && d.Property == "background-color":
			t.Item = t.Item.Background(c)
		case d.Surface == style.SurfaceMenuItem && d.Property == "color":
			t.Item = t.Item.Foreground(c)
		case d.Surface == style.SurfaceTitle && d.Property == "color":
			t.Title = t.Title.Foreground(c)
		case d.Surface == style.SurfaceTitle && d.Property == "border-bottom-color":
			t.Title = t.Title.BorderForeground(c)
		case d.Surface == style.SurfaceEmptyHint && d.Property == "color":
			t.EmptyHint = t.EmptyHint.Foreground(c)
		case d.Surface == style.SurfaceMenuPanel && d.Property == "background-color":
			t.Panel = t.Panel.Background(c)
		case d.Surface == style.SurfaceMenuPanel && d.Property == "border-color":
			t.Panel = t.Panel.BorderForeground(c)
		}
	}
	return t
}

// terminalColor converts a declaration value to an opaque terminal color.
func terminalColor(value string) (lipgloss.Color, bool) {
	c, alpha, ok := ParseCSSColor(value)
	if !ok {
		return "", false
	}
	if alpha < 1 {
		c = terminalBackground().BlendRgb(c, alpha)
	}
	return lipgloss.Color(c.Clamped().Hex()), true
}

func terminalBackground() colorful.Color {
	if bg, err := colorful.Hex(string(Background)); err == nil {
		return bg
	}
	return colorful.Color{}
}

// ParseCSSColor parses "#rrggbb" and "rgba(r, g, b, a)" values.
func ParseCSSColor(value string) (colorful.Color, float64, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		return c, 1, err == nil
	}

	var r, g, b uint8
	var a float64
	if _, err := fmt.Sscanf(value, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
		return colorful.Color{}, 0, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, style.ClampOpacity(a), true
}

// Swatch renders a color sample followed by its value.
func Swatch(value string) string {
	c, ok := terminalColor(value)
	if !ok {
		return MutedStyle.Render(value)
	}
	return lipgloss.NewStyle().Background(c).Render("  ") + " " + value
}
