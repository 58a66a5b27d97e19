package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/overlay"
	"github.com/iiroan/qra/internal/style"
)

// Host is a terminal stand-in for the chat application hosting the
// overlay. It records what the plugin renders and draws it on demand.
type Host struct {
	mu sync.Mutex

	replies []string
	send    icon.HostColors

	buttonVisible bool
	button        icon.Visual
	barHidden     bool
	menuOpen      bool
	previewOpen   bool
	preview       icon.Visual
	customVisible bool
	customValue   string
	bodyClass     string
	status        string
	statusOK      bool

	decls map[string]style.Declaration
	order []string
}

// NewHost creates a host with the given quick replies. send describes the
// host's own send control for color matching.
func NewHost(replies []string, send icon.HostColors) *Host {
	return &Host{
		replies: replies,
		send:    send,
		decls:   make(map[string]style.Declaration),
	}
}

// Surfaces returns the overlay targets backed by h.
func (h *Host) Surfaces() overlay.Surfaces {
	return overlay.Surfaces{
		Button:      hostButton{h},
		HostBar:     hostBar{h},
		Menu:        hostMenu{h},
		Preview:     hostPreview{h},
		Styles:      hostStyles{h},
		CustomInput: hostInput{h},
		Body:        hostBody{h},
		Status:      hostStatus{h},
		Colors:      overlay.ColorSourceFunc(h.hostColors),
	}
}

func (h *Host) hostColors() icon.HostColors {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.send
}

// Declarations returns the applied style declarations in first-applied order.
func (h *Host) Declarations() []style.Declaration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.declsLocked()
}

// MenuOpen reports whether the overlay menu is open.
func (h *Host) MenuOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.menuOpen
}

// LastStatus returns the latest feedback message.
func (h *Host) LastStatus() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status, h.statusOK
}

// Render draws the chat input area with the overlay as currently rendered.
func (h *Host) Render() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	theme := themeFromDeclarations(h.declsLocked())
	width := terminalWidth()

	var parts []string
	parts = append(parts, HintStyle.Render("body."+h.bodyClass))

	if h.menuOpen {
		parts = append(parts, h.renderMenu(theme))
	}
	if h.previewOpen {
		parts = append(parts, h.renderPreview())
	}

	var bar []string
	if h.buttonVisible {
		bar = append(bar, h.renderButton())
	}
	if !h.barHidden {
		for _, reply := range h.replies {
			bar = append(bar, lipgloss.NewStyle().Foreground(Foreground).Render("["+reply+"]"))
		}
	}
	bar = append(bar, MutedStyle.Render("› type a message"))
	parts = append(parts, strings.Join(bar, " "))

	if h.customVisible {
		value := h.customValue
		if value == "" {
			value = MutedStyle.Render("(empty)")
		}
		parts = append(parts, KeyValue("custom icon", ansi.Truncate(value, max(10, width-16), "..."), 11))
	}
	if h.status != "" {
		parts = append(parts, Status(h.status, h.statusOK))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (h *Host) declsLocked() []style.Declaration {
	out := make([]style.Declaration, 0, len(h.order))
	for _, key := range h.order {
		out = append(out, h.decls[key])
	}
	return out
}

func (h *Host) renderButton() string {
	s := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(Border)
	if h.button.HasClass("primary-button") {
		s = s.BorderForeground(Primary)
	}
	if h.button.Color != "" {
		if c, ok := terminalColor(h.button.Color); ok {
			s = s.Foreground(c)
		}
	}
	return s.Render(h.button.Glyph)
}

func (h *Host) renderMenu(theme MenuTheme) string {
	lines := []string{theme.Title.Render("Quick Replies")}
	if len(h.replies) == 0 {
		lines = append(lines, theme.EmptyHint.Render("No quick replies configured"))
	}
	for _, reply := range h.replies {
		lines = append(lines, theme.Item.Render(reply))
	}
	return theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (h *Host) renderPreview() string {
	body := h.preview.Glyph
	if h.preview.Image != "" {
		body += " " + MutedStyle.Render(ansi.Truncate(h.preview.Image, 48, "..."))
	}
	return InfoBox.Render(Bold.Render("Icon preview") + "\n" + body)
}

type hostButton struct{ h *Host }

func (b hostButton) SetVisible(visible bool) {
	b.h.mu.Lock()
	defer b.h.mu.Unlock()
	b.h.buttonVisible = visible
}

func (b hostButton) SetVisual(v icon.Visual) {
	b.h.mu.Lock()
	defer b.h.mu.Unlock()
	b.h.button = v
}

type hostBar struct{ h *Host }

func (b hostBar) SetHidden(hidden bool) {
	b.h.mu.Lock()
	defer b.h.mu.Unlock()
	b.h.barHidden = hidden
}

type hostMenu struct{ h *Host }

func (m hostMenu) IsOpen() bool {
	m.h.mu.Lock()
	defer m.h.mu.Unlock()
	return m.h.menuOpen
}

func (m hostMenu) Open()  { m.set(true) }
func (m hostMenu) Close() { m.set(false) }

func (m hostMenu) set(open bool) {
	m.h.mu.Lock()
	defer m.h.mu.Unlock()
	m.h.menuOpen = open
}

type hostPreview struct{ h *Host }

func (p hostPreview) Show(v icon.Visual) {
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	p.h.previewOpen, p.h.preview = true, v
}

func (p hostPreview) Hide() {
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	p.h.previewOpen = false
}

func (p hostPreview) IsOpen() bool {
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	return p.h.previewOpen
}

type hostStyles struct{ h *Host }

func (s hostStyles) Apply(decls []style.Declaration) {
	s.h.mu.Lock()
	defer s.h.mu.Unlock()
	for _, d := range decls {
		key := d.Selector + "|" + d.Property
		if _, seen := s.h.decls[key]; !seen {
			s.h.order = append(s.h.order, key)
		}
		s.h.decls[key] = d
	}
}

type hostInput struct{ h *Host }

func (i hostInput) SetVisible(visible bool) {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	i.h.customVisible = visible
}

func (i hostInput) SetValue(content string) {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	i.h.customValue = content
}

type hostBody struct{ h *Host }

func (b hostBody) SetStateClass(class string) {
	b.h.mu.Lock()
	defer b.h.mu.Unlock()
	b.h.bodyClass = class
}

type hostStatus struct{ h *Host }

func (s hostStatus) Notify(message string, ok bool) {
	s.h.mu.Lock()
	defer s.h.mu.Unlock()
	s.h.status, s.h.statusOK = message, ok
}
