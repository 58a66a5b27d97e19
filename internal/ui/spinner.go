package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
)

// ErrInterrupted is returned when the user stops a task with ctrl+c.
var ErrInterrupted = errors.New("interrupted")

type taskModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	cancel  context.CancelFunc

	finished bool
	err      error
}

type taskDoneMsg struct{ err error }

func newTaskModel(label string, cancel context.CancelFunc) taskModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Primary)))
	return taskModel{spinner: s, label: label, started: time.Now(), cancel: cancel}
}

func (m taskModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.finished, m.err = true, ErrInterrupted
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskDoneMsg:
		m.finished, m.err = true, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m taskModel) View() tea.View {
	if m.finished {
		return tea.NewView(taskLine(m.label, time.Since(m.started), m.err) + "\n")
	}
	return tea.NewView(m.spinner.View() + " " + m.label + "\n")
}

func taskLine(label string, elapsed time.Duration, err error) string {
	elapsed = elapsed.Round(time.Millisecond)
	if err != nil {
		return ErrorStyle.Render(fmt.Sprintf("✗ %s failed (%s): %v", label, elapsed, err))
	}
	return SuccessStyle.Render(fmt.Sprintf("✓ %s (%s)", label, elapsed))
}

// RunWithSpinner runs fn with a spinner on screen. ctrl+c cancels the
// context passed to fn and returns ErrInterrupted without waiting for fn.
// Without a terminal only the result line is printed.
func RunWithSpinner(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !IsInteractiveTerminal() {
		start := time.Now()
		err := fn(ctx)
		fmt.Println(taskLine(label, time.Since(start), err))
		return err
	}

	p := tea.NewProgram(newTaskModel(label, cancel))
	result := make(chan error, 1)
	go func() {
		err := fn(ctx)
		result <- err
		p.Send(taskDoneMsg{err})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running spinner: %w", err)
	}
	if m, ok := final.(taskModel); ok && errors.Is(m.err, ErrInterrupted) {
		return ErrInterrupted
	}
	return <-result
}
