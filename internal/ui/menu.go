package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// MenuActionQuit is returned when the menu is left without a selection.
const MenuActionQuit = "__quit__"

// ErrNonInteractive reports that no terminal is attached for the TUI.
var ErrNonInteractive = errors.New("non-interactive terminal")

const (
	defaultMenuHeight = 26
	splitMinWidth     = 90
	detailMinWidth    = 24
)

// MenuOption configures RunMenuWithOptions.
type MenuOption func(*menuConfig)

type menuConfig struct {
	selected string
	info     []InfoLine
	preview  func(id string) string
}

// InfoLine is a label/value pair shown under the selection details.
type InfoLine struct {
	Label string
	Value string
}

// WithSelected opens the menu with the item id highlighted.
func WithSelected(id string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.selected = strings.TrimSpace(id)
	}
}

// WithInfo adds session lines under the selection details.
func WithInfo(lines ...InfoLine) MenuOption {
	return func(cfg *menuConfig) {
		cfg.info = append(cfg.info, lines...)
	}
}

// WithPreview renders extra detail content for the highlighted item.
func WithPreview(render func(id string) string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.preview = render
	}
}

// MenuItem is one settings section.
type MenuItem struct {
	ID        string
	TitleText string
	Details   string
	// Glyph is drawn before the title when set.
	Glyph string
}

func (m MenuItem) Title() string       { return m.TitleText }
func (m MenuItem) Description() string { return m.Details }
func (m MenuItem) FilterValue() string { return m.TitleText + " " + m.ID }

func (m MenuItem) label() string {
	if m.Glyph == "" {
		return m.TitleText
	}
	return m.Glyph + " " + m.TitleText
}

type menuKeys struct {
	Select key.Binding
	Jump   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Jump, k.Filter, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// sectionDelegate draws one numbered row per section.
type sectionDelegate struct {
	number lipgloss.Style
	normal lipgloss.Style
	active lipgloss.Style
}

func newSectionDelegate() sectionDelegate {
	return sectionDelegate{
		number: lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted))),
		normal: lipgloss.NewStyle().Foreground(lipgloss.Color(string(Foreground))),
		active: lipgloss.NewStyle().Foreground(lipgloss.Color(string(Primary))).Bold(true),
	}
}

func (d sectionDelegate) Height() int                         { return 1 }
func (d sectionDelegate) Spacing() int                        { return 0 }
func (d sectionDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d sectionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	section, ok := item.(MenuItem)
	if !ok || m.Width() <= 0 {
		return
	}

	text := ansi.Truncate(section.label(), max(10, m.Width()-6), "...")
	number := fmt.Sprintf("%d.", index+1)
	if index == m.Index() && m.FilterState() != list.Filtering {
		fmt.Fprint(w, "> "+d.active.Render(number+" "+text)) //nolint:errcheck
		return
	}
	fmt.Fprint(w, "  "+d.number.Render(number)+" "+d.normal.Render(text)) //nolint:errcheck
}

type menuModel struct {
	list     list.Model
	help     help.Model
	keys     menuKeys
	title    string
	subtitle string
	cfg      menuConfig

	choice string
	done   bool
	width  int
	height int
}

func newMenuModel(title string, subtitle string, items []MenuItem, cfg menuConfig) menuModel {
	rows := make([]list.Item, len(items))
	selected := 0
	for i, item := range items {
		rows[i] = item
		if item.ID == cfg.selected {
			selected = i
		}
	}

	l := list.New(rows, newSectionDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Select(selected)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Accent))).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted)))
	h.Styles.ShortSeparator = h.Styles.ShortDesc

	return menuModel{
		list:     l,
		help:     h,
		keys:     defaultMenuKeys(),
		title:    title,
		subtitle: subtitle,
		cfg:      cfg,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth, _, _ := m.panes()
		m.list.SetSize(listWidth, max(5, m.bodyHeight()-2))
	case tea.KeyPressMsg:
		if m.list.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m.quit()
			}
			break
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice, m.done = item.ID, true
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Jump):
			if m.jump(int(msg.String()[0] - '0')) {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m menuModel) quit() (tea.Model, tea.Cmd) {
	m.choice, m.done = MenuActionQuit, true
	return m, tea.Quit
}

// jump selects the n-th visible row on the current page.
func (m *menuModel) jump(n int) bool {
	visible := m.list.VisibleItems()
	target := m.list.Index() - m.list.Cursor() + n - 1
	if n < 1 || target < 0 || target >= len(visible) {
		return false
	}
	item, ok := visible[target].(MenuItem)
	if !ok {
		return false
	}
	m.list.Select(target)
	m.choice, m.done = item.ID, true
	return true
}

func (m menuModel) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = terminalWidth()
	}
	if height <= 0 {
		height = defaultMenuHeight
	}
	return width, height
}

func (m menuModel) bodyHeight() int {
	_, height := m.size()
	return max(10, height-8)
}

// panes returns the list and detail widths. Narrow terminals stack them.
func (m menuModel) panes() (int, int, bool) {
	width, _ := m.size()
	if width < splitMinWidth {
		return max(10, width-4), max(10, width-4), true
	}
	listWidth := min(width*3/5, width-detailMinWidth-2)
	return listWidth, width - listWidth - 2, false
}

func (m menuModel) View() tea.View {
	if m.done {
		return tea.View{}
	}

	listWidth, detailWidth, stacked := m.panes()
	left := m.list.View()
	if filter := strings.TrimSpace(m.list.FilterValue()); filter != "" {
		left += "\n\n" + MutedStyle.Render("filter: "+ansi.Truncate(filter, max(10, listWidth-8), "..."))
	}
	left = lipgloss.NewStyle().Width(listWidth).PaddingRight(1).Render(left)
	right := lipgloss.NewStyle().Width(detailWidth).PaddingLeft(1).Render(m.details(detailWidth - 1))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}

	v := tea.NewView(Frame(m.title, m.subtitle, body, m.help.View(m.keys)))
	v.AltScreen = true
	return v
}

func (m menuModel) details(width int) string {
	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Accent))).Bold(true)
	item, ok := m.list.SelectedItem().(MenuItem)
	if !ok {
		return MutedStyle.Render("No section")
	}

	lines := []string{
		heading.Render(ansi.Truncate(item.TitleText, max(8, width), "...")),
	}
	if item.Details != "" {
		lines = append(lines, MutedStyle.Render(ansi.Wrap(item.Details, max(8, width), " ")))
	}
	if m.cfg.preview != nil {
		if extra := m.cfg.preview(item.ID); extra != "" {
			lines = append(lines, "", extra)
		}
	}
	if len(m.cfg.info) > 0 {
		lines = append(lines, "", heading.Render("Overlay"))
		for _, info := range m.cfg.info {
			lines = append(lines, infoLine(info, width))
		}
	}
	return strings.Join(lines, "\n")
}

func infoLine(info InfoLine, width int) string {
	value := info.Value
	if strings.TrimSpace(value) == "" {
		value = "none"
	}
	line := fmt.Sprintf("%-9s %s", strings.ToLower(info.Label)+":", value)
	return MutedStyle.Render(ansi.Truncate(line, max(10, width), "..."))
}

// RunMenu displays the section list and returns the chosen item id.
func RunMenu(title string, subtitle string, items []MenuItem) (string, error) {
	return RunMenuWithOptions(title, subtitle, items)
}

// RunMenuWithOptions is RunMenu with options. It returns ErrNonInteractive
// when stdout is not a terminal.
func RunMenuWithOptions(title string, subtitle string, items []MenuItem, options ...MenuOption) (string, error) {
	if !IsInteractiveTerminal() {
		return "", ErrNonInteractive
	}
	var cfg menuConfig
	for _, opt := range options {
		opt(&cfg)
	}

	result, err := tea.NewProgram(newMenuModel(title, subtitle, items, cfg)).Run()
	if err != nil {
		return "", err
	}
	if final, ok := result.(menuModel); ok {
		return final.choice, nil
	}
	return MenuActionQuit, nil
}
