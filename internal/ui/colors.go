package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the TUI color palette.
type Palette struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Disabled   bool
}

const defaultThemeName = "graphite"

// ThemeNames returns supported palette names.
func ThemeNames() []string {
	return []string{"graphite", "ember", "mono"}
}

// PaletteByName returns a palette by theme name. Unknown names select the
// default palette.
func PaletteByName(name string) Palette {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ember":
		return Palette{
			Name:       "ember",
			Primary:    lipgloss.Color("#FB923C"),
			Secondary:  lipgloss.Color("#F472B6"),
			Accent:     lipgloss.Color("#FDE047"),
			Info:       lipgloss.Color("#7DD3FC"),
			Success:    lipgloss.Color("#4ADE80"),
			Warning:    lipgloss.Color("#FBBF24"),
			Error:      lipgloss.Color("#F87171"),
			Muted:      lipgloss.Color("#A8A29E"),
			Background: lipgloss.Color("#1C1917"),
			Foreground: lipgloss.Color("#F5F5F4"),
			Border:     lipgloss.Color("#57534E"),
			Highlight:  lipgloss.Color("#FED7AA"),
		}
	case "mono":
		return Palette{
			Name:       "mono",
			Primary:    lipgloss.Color("#F5F5F5"),
			Secondary:  lipgloss.Color("#D4D4D4"),
			Accent:     lipgloss.Color("#A3A3A3"),
			Info:       lipgloss.Color("#F5F5F5"),
			Success:    lipgloss.Color("#F5F5F5"),
			Warning:    lipgloss.Color("#A3A3A3"),
			Error:      lipgloss.Color("#D4D4D4"),
			Muted:      lipgloss.Color("#737373"),
			Background: lipgloss.Color("#0A0A0A"),
			Foreground: lipgloss.Color("#F5F5F5"),
			Border:     lipgloss.Color("#525252"),
			Highlight:  lipgloss.Color("#FFFFFF"),
		}
	default:
		return Palette{
			Name:       "graphite",
			Primary:    lipgloss.Color("#8AB4F8"),
			Secondary:  lipgloss.Color("#C58AF9"),
			Accent:     lipgloss.Color("#FDD663"),
			Info:       lipgloss.Color("#78D9EC"),
			Success:    lipgloss.Color("#81C995"),
			Warning:    lipgloss.Color("#FCAD70"),
			Error:      lipgloss.Color("#F28B82"),
			Muted:      lipgloss.Color("#9AA0A6"),
			Background: lipgloss.Color("#1E1E1E"),
			Foreground: lipgloss.Color("#E8EAED"),
			Border:     lipgloss.Color("#444444"),
			Highlight:  lipgloss.Color("#FFFFFF"),
		}
	}
}

// DefaultPalette returns the default theme palette.
func DefaultPalette() Palette {
	return PaletteByName(defaultThemeName)
}
