// Package visibility switches between the injected overlay control and the
// host's native quick-reply bar.
package visibility

import (
	"io"

	"github.com/charmbracelet/log"
)

// State is the visibility state of the overlay.
type State int

const (
	// Active shows the injected control and hides the host bar.
	Active State = iota
	// Inactive hides the injected control and shows the host bar.
	Inactive
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// BodyClass returns the document class marking the state.
func (s State) BodyClass() string {
	if s == Active {
		return "qra-enabled"
	}
	return "qra-disabled"
}

// Initial returns the state for a normalized enabled flag.
func Initial(enabled bool) State {
	if enabled {
		return Active
	}
	return Inactive
}

// Control is the injected overlay button.
type Control interface {
	SetVisible(visible bool)
}

// HostBar is the host's native quick-reply bar.
type HostBar interface {
	SetHidden(hidden bool)
}

// Menu is the overlay menu.
type Menu interface {
	IsOpen() bool
	Close()
}

// Targets groups the surfaces the controller drives. Any of them may be nil.
type Targets struct {
	Control Control
	HostBar HostBar
	Menu    Menu
}

// Controller applies enabled/disabled transitions.
type Controller struct {
	targets Targets
	logger  *log.Logger
	state   State
}

// New creates a controller. A nil logger discards output.
func New(targets Targets, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{targets: targets, logger: logger, state: Active}
}

// State returns the last applied state.
func (c *Controller) State() State {
	return c.state
}

// Apply transitions to the state for enabled. Every step runs
// synchronously; entering Inactive always closes an open menu so a disabled
// control never has an open overlay.
func (c *Controller) Apply(enabled bool) State {
	next := Initial(enabled)

	if c.targets.Control != nil {
		c.targets.Control.SetVisible(enabled)
	} else {
		c.logger.Warn("overlay control not found, skipping visibility")
	}

	if c.targets.HostBar != nil {
		c.targets.HostBar.SetHidden(enabled)
	} else {
		c.logger.Warn("host quick-reply bar not found, skipping visibility")
	}

	if next == Inactive && c.targets.Menu != nil && c.targets.Menu.IsOpen() {
		c.targets.Menu.Close()
		c.logger.Debug("closed overlay menu on disable")
	}

	if next != c.state {
		c.logger.Debug("visibility changed", "from", c.state, "to", next)
	}
	c.state = next
	return next
}
