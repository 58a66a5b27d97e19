package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

const fallbackWidth = 80

// IsInteractiveTerminal reports whether stdout is a terminal that can host
// the TUI. CI and an unset TERM count as non-interactive.
func IsInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// Frame stacks the header, subtitle, body and key help of a full-screen view.
// Empty parts are skipped.
func Frame(title string, subtitle string, body string, footer string) string {
	parts := []string{Header(title)}
	if subtitle = strings.TrimSpace(subtitle); subtitle != "" {
		parts = append(parts, Tagline.Render(subtitle))
	}
	parts = append(parts, "", body)
	if footer != "" {
		parts = append(parts, "", footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
