// Package overlay is the plugin context: it owns the configuration and
// drives icon, visibility, style and persistence in response to host
// events.
package overlay

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/persist"
	"github.com/iiroan/qra/internal/style"
	"github.com/iiroan/qra/internal/upload"
	"github.com/iiroan/qra/internal/visibility"
)

// ControlValues are the settings panel's current control values. Nil
// fields are left unchanged. Styles is keyed by config.StyleField names.
type ControlValues struct {
	Enabled         *bool
	IconKind        *string
	CustomContent   *string
	MatchHostColors *bool
	Styles          map[string]any
}

// Options configure a Plugin.
type Options struct {
	// Store is the local fallback store. Nil selects an in-memory store.
	Store persist.Store
	// Primary is the host save capability. Nil when the host has none.
	Primary  persist.Saver
	Surfaces Surfaces
	Logger   *log.Logger
	// ReadClipboard overrides the system clipboard.
	ReadClipboard func() (string, error)
}

// Plugin is one running overlay instance. Entry points are safe for
// concurrent use and never panic.
type Plugin struct {
	mu sync.Mutex

	cfg      config.Configuration
	surfaces Surfaces
	logger   *log.Logger

	persist    *persist.Coordinator
	visibility *visibility.Controller
	loader     *upload.Loader
	readClip   func() (string, error)

	pendingUpload chan error
	lastReport    *persist.Report
}

// New creates a plugin holding the default configuration. Call Start to
// load persisted settings and render.
func New(opts Options) *Plugin {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := opts.Store
	if store == nil {
		store = persist.NewMemoryStore()
	}
	readClip := opts.ReadClipboard
	if readClip == nil {
		readClip = clipboard.ReadAll
	}

	s := opts.Surfaces
	return &Plugin{
		cfg:      config.Default(),
		surfaces: s,
		logger:   logger,
		persist:  persist.NewCoordinator(store, opts.Primary, logger.WithPrefix("persist")),
		visibility: visibility.New(visibility.Targets{
			Control: s.Button,
			HostBar: s.HostBar,
			Menu:    s.Menu,
		}, logger.WithPrefix("visibility")),
		loader:   upload.NewLoader(logger.WithPrefix("upload")),
		readClip: readClip,
	}
}

// Start loads the configuration from the fallback store and the host's
// in-memory object, then renders every surface. Nothing is saved.
func (p *Plugin) Start(inMemory map[string]any) config.Configuration {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("Start")

	p.cfg = p.persist.Load(inMemory)
	p.renderIcon()
	p.applyVisibility()
	p.project(style.Project(p.cfg.MenuStyles))

	p.logger.Debug("overlay started", "enabled", p.cfg.Enabled, "icon", p.cfg.Icon.Kind, "host_save", p.persist.HasPrimary())
	return p.cfg.Clone()
}

// Config returns a copy of the current configuration.
func (p *Plugin) Config() config.Configuration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.Clone()
}

// State returns the current visibility state.
func (p *Plugin) State() visibility.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibility.State()
}

// LastReport returns the outcome of the most recent save.
func (p *Plugin) LastReport() (persist.Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastReport == nil {
		return persist.Report{}, false
	}
	return *p.lastReport, true
}

// SaveSettings commits a batch of control values: each present value is
// applied, every surface re-renders, and the configuration is saved.
// Invalid values are logged and skipped. It reports whether the batch
// applied cleanly and reached at least one persistence channel.
func (p *Plugin) SaveSettings(v ControlValues) (ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("SaveSettings", &ok)

	next, clean := p.cfg, true
	apply := func(field string, value any) {
		var err error
		next, err = config.ApplyFieldChange(next, field, value)
		if err != nil {
			p.logger.Warn("ignoring control value", "field", field, "err", err)
			clean = false
		}
	}

	if v.Enabled != nil {
		apply(config.KeyEnabled, *v.Enabled)
	}
	if v.IconKind != nil {
		apply(config.KeyIconType, *v.IconKind)
	}
	if v.CustomContent != nil {
		apply(config.KeyCustomIcon, *v.CustomContent)
	}
	if v.MatchHostColors != nil {
		apply(config.KeyMatchColors, *v.MatchHostColors)
	}
	for _, field := range slices.Sorted(maps.Keys(v.Styles)) {
		apply(field, v.Styles[field])
	}

	p.cfg = next
	p.renderIcon()
	p.applyVisibility()
	p.project(style.Project(p.cfg.MenuStyles))
	report := p.save()

	return clean && report.Durable()
}

// ChangeField applies one field change, re-renders what it affects and
// saves. It reports whether the change was accepted.
func (p *Plugin) ChangeField(field string, value any) (ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("ChangeField", &ok)

	return p.changeField(field, value)
}

// SetStyle changes one style property.
func (p *Plugin) SetStyle(surface style.Surface, prop style.Property, value any) (ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("SetStyle", &ok)

	return p.changeField(config.StyleField(surface, prop), value)
}

func (p *Plugin) changeField(field string, value any) bool {
	next, err := config.ApplyFieldChange(p.cfg, field, value)
	if err != nil {
		p.logger.Warn("rejected settings change", "field", field, "err", err)
		p.notify(fmt.Sprintf("Invalid value for %s", field), false)
		return false
	}
	p.cfg = next

	switch {
	case field == config.KeyEnabled:
		p.applyVisibility()
	case strings.HasPrefix(field, config.KeyMenuStyles+"."):
		surface, _ := style.ParseSurface(strings.Split(field, ".")[1])
		p.project(style.ProjectSurface(p.cfg.MenuStyles, surface))
	default:
		p.renderIcon()
	}

	p.save()
	return true
}

// ResetStyles restores every menu surface to its default style.
func (p *Plugin) ResetStyles() (ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("ResetStyles", &ok)

	p.cfg = p.cfg.ResetStyles()
	p.project(style.Reset())
	p.save()
	return true
}

// ShowPreview opens the preview popup for the current icon.
func (p *Plugin) ShowPreview() {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("ShowPreview")

	if p.surfaces.Preview == nil {
		p.logger.Warn("preview popup not found")
		return
	}
	p.surfaces.Preview.Show(icon.PreviewVisual(icon.Resolve(p.cfg.Icon)))
}

// ClosePreview hides the preview popup.
func (p *Plugin) ClosePreview() {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("ClosePreview")

	if p.surfaces.Preview != nil {
		p.surfaces.Preview.Hide()
	}
}

// ToggleMenu opens or closes the overlay menu. A disabled overlay never
// opens it.
func (p *Plugin) ToggleMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("ToggleMenu")

	menu := p.surfaces.Menu
	if menu == nil {
		p.logger.Warn("overlay menu not found")
		return
	}
	switch {
	case menu.IsOpen():
		menu.Close()
	case p.cfg.Enabled:
		menu.Open()
	}
}

// UploadIcon reads an image file in the background and stores it as the
// custom icon content. The returned channel receives the outcome once;
// a request replaced by a newer one receives upload.ErrSuperseded.
func (p *Plugin) UploadIcon(path string) <-chan error {
	done := make(chan error, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("entry point panicked", "op", "UploadIcon", "panic", r)
			p.resolveUpload(done, fmt.Errorf("upload panicked: %v", r))
		}
	}()

	if p.pendingUpload != nil {
		p.pendingUpload <- upload.ErrSuperseded
	}
	p.pendingUpload = done

	p.loader.Start(context.Background(), path, func(res upload.Result, err error) {
		p.finishUpload(done, res, err)
	})
	return done
}

func (p *Plugin) finishUpload(done chan error, res upload.Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pendingUpload != done || !p.loader.Current(res.Generation) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("upload completion panicked", "panic", r)
			p.resolveUpload(done, fmt.Errorf("upload panicked: %v", r))
		}
	}()

	if err != nil {
		p.notify("Icon upload failed", false)
		p.resolveUpload(done, err)
		return
	}

	p.changeField(config.KeyCustomIcon, res.DataURI)
	p.resolveUpload(done, nil)
}

// resolveUpload delivers the outcome of the pending request once.
func (p *Plugin) resolveUpload(done chan error, err error) {
	if p.pendingUpload != done {
		return
	}
	p.pendingUpload = nil
	done <- err
}

// PasteIcon stores the clipboard text as the custom icon content.
func (p *Plugin) PasteIcon() (ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.guard("PasteIcon", &ok)

	text, err := p.readClip()
	if err != nil {
		p.logger.Warn("clipboard unavailable", "err", err)
		p.notify("Clipboard unavailable", false)
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		p.notify("Clipboard is empty", false)
		return false
	}
	return p.changeField(config.KeyCustomIcon, text)
}

// renderIcon updates the button, the custom input and an open preview.
func (p *Plugin) renderIcon() {
	desc := icon.Resolve(p.cfg.Icon)

	if p.surfaces.Button != nil {
		var host icon.HostColors
		if p.cfg.MatchHostColors && p.surfaces.Colors != nil {
			host = p.surfaces.Colors.HostColors()
		}
		p.surfaces.Button.SetVisual(icon.ButtonVisual(desc, host, p.cfg.MatchHostColors))
	} else {
		p.logger.Warn("overlay control not found, skipping icon")
	}

	if p.surfaces.CustomInput != nil {
		p.surfaces.CustomInput.SetVisible(p.cfg.Icon.Kind == icon.KindCustom)
		p.surfaces.CustomInput.SetValue(p.cfg.Icon.CustomContent)
	}

	if p.surfaces.Preview != nil && p.surfaces.Preview.IsOpen() {
		p.surfaces.Preview.Show(icon.PreviewVisual(desc))
	}
}

func (p *Plugin) applyVisibility() {
	state := p.visibility.Apply(p.cfg.Enabled)
	if p.surfaces.Body != nil {
		p.surfaces.Body.SetStateClass(state.BodyClass())
	}
}

func (p *Plugin) project(decls []style.Declaration) {
	if p.surfaces.Styles == nil {
		p.logger.Warn("style target not found, skipping styles")
		return
	}
	p.surfaces.Styles.Apply(decls)
}

func (p *Plugin) save() persist.Report {
	report := p.persist.Save(p.cfg)
	p.lastReport = &report
	p.notify(report.Message(), report.OK())
	return report
}

func (p *Plugin) notify(message string, ok bool) {
	if p.surfaces.Status != nil {
		p.surfaces.Status.Notify(message, ok)
	}
}

// guard recovers a panic in an entry point. ok, when given, is set to false.
func (p *Plugin) guard(op string, ok ...*bool) {
	if r := recover(); r != nil {
		p.logger.Error("entry point panicked", "op", op, "panic", r)
		for _, o := range ok {
			*o = false
		}
	}
}
