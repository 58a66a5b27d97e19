// Package ui provides the terminal host and Charm-based UI components for qra.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles, rebuilt by ApplyPalette.
var (
	Bold         lipgloss.Style
	Tagline      lipgloss.Style
	MutedStyle   lipgloss.Style
	HintStyle    lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	KeyStyle     lipgloss.Style

	InfoBox    lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style

	headerStyle lipgloss.Style
)

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Tagline = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
	HintStyle = lipgloss.NewStyle().Foreground(Muted).Faint(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	KeyStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		MarginTop(1)
	InfoBox = box.BorderForeground(Info)
	SuccessBox = box.BorderForeground(Success)
	ErrorBox = box.BorderForeground(Error)

	headerStyle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)
}

// PrimaryStyle returns a bold style in the primary color.
func PrimaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

// Header renders a section header.
func Header(title string) string {
	return headerStyle.Render("qra · " + strings.ToUpper(title))
}

// KeyValue renders an aligned "key  value" line.
func KeyValue(key string, value string, width int) string {
	if width < len(key) {
		width = len(key)
	}
	return MutedStyle.Render(key+strings.Repeat(" ", width-len(key))) + "  " + value
}

// Status renders a save or upload status line.
func Status(message string, ok bool) string {
	if ok {
		return SuccessStyle.Render("✓ " + message)
	}
	return WarningStyle.Render("! " + message)
}
