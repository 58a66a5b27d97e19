package overlay

import (
	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/style"
	"github.com/iiroan/qra/internal/visibility"
)

// Button is the injected overlay control.
type Button interface {
	visibility.Control
	SetVisual(v icon.Visual)
}

// Menu is the overlay menu the button opens.
type Menu interface {
	visibility.Menu
	Open()
}

// Preview is the icon preview popup.
type Preview interface {
	Show(v icon.Visual)
	Hide()
	IsOpen() bool
}

// StyleSink receives style declarations for the menu surfaces.
type StyleSink interface {
	Apply(decls []style.Declaration)
}

// CustomInput is the container holding the custom icon field.
type CustomInput interface {
	SetVisible(visible bool)
	SetValue(content string)
}

// Body carries the document-level enabled/disabled class.
type Body interface {
	SetStateClass(class string)
}

// Status shows save and upload feedback.
type Status interface {
	Notify(message string, ok bool)
}

// ColorSource reports the host's native send control look.
type ColorSource interface {
	HostColors() icon.HostColors
}

// ColorSourceFunc adapts a function to ColorSource.
type ColorSourceFunc func() icon.HostColors

func (f ColorSourceFunc) HostColors() icon.HostColors { return f() }

// Surfaces are the host-side targets the plugin renders into. Any of them
// may be nil; the matching sub-step is skipped.
type Surfaces struct {
	Button      Button
	HostBar     visibility.HostBar
	Menu        Menu
	Preview     Preview
	Styles      StyleSink
	CustomInput CustomInput
	Body        Body
	Status      Status
	Colors      ColorSource
}
