// Package persist saves the configuration through the host's primary save
// capability and mirrors it into a local fallback store.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/iiroan/qra/internal/config"
)

// StoreKey is the fallback store entry holding the serialized configuration.
const StoreKey = "QRA_settings"

var (
	// ErrNoPrimary reports that the host offers no save capability.
	ErrNoPrimary = errors.New("host save capability unavailable")
	// ErrNoFallback reports a coordinator built without a fallback store.
	ErrNoFallback = errors.New("fallback store unavailable")
)

// Saver is the host's primary save capability. It persists the host-owned
// in-memory settings object.
type Saver interface {
	Save() error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func() error

func (f SaverFunc) Save() error { return f() }

// Mirror is implemented by savers that own the in-memory settings object.
// The coordinator hands them the committed configuration before Save.
type Mirror interface {
	Update(cfg config.Configuration)
}

// Report is the outcome of one Save. Both paths always run.
type Report struct {
	Fallback error
	Primary  error
}

// OK reports whether the primary path succeeded.
func (r Report) OK() bool {
	return r.Primary == nil
}

// Durable reports whether at least one path stored the configuration.
func (r Report) Durable() bool {
	return r.Primary == nil || r.Fallback == nil
}

// Message is the user-facing save feedback.
func (r Report) Message() string {
	switch {
	case r.Primary == nil:
		return "Settings saved"
	case r.Fallback == nil:
		return "Settings saved locally"
	default:
		return "Settings could not be saved"
	}
}

// Coordinator writes the configuration to the fallback store and then to
// the primary saver.
type Coordinator struct {
	store   Store
	primary Saver
	logger  *log.Logger
}

// NewCoordinator creates a coordinator. primary may be nil when the host has
// no save capability. A nil logger discards output.
func NewCoordinator(store Store, primary Saver, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{store: store, primary: primary, logger: logger}
}

// HasPrimary reports whether a primary save capability is wired.
func (c *Coordinator) HasPrimary() bool {
	return c.primary != nil
}

// Save writes cfg to the fallback store first, then invokes the primary
// saver. A failing or panicking primary never prevents the fallback write.
func (c *Coordinator) Save(cfg config.Configuration) Report {
	var report Report

	report.Fallback = c.saveFallback(cfg)
	if report.Fallback != nil {
		c.logger.Warn("fallback save failed", "err", report.Fallback)
	}

	if c.primary == nil {
		report.Primary = ErrNoPrimary
		c.logger.Warn("host save unavailable, kept fallback copy only")
		return report
	}

	report.Primary = c.savePrimary(cfg)
	if report.Primary != nil {
		c.logger.Error("host save failed", "err", report.Primary)
	} else {
		c.logger.Debug("settings saved")
	}
	return report
}

func (c *Coordinator) saveFallback(cfg config.Configuration) (err error) {
	if c.store == nil {
		return ErrNoFallback
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fallback store panicked: %v", r)
		}
	}()

	data, err := json.Marshal(cfg)
	if err != nil {
		clean, dropped := cfg.Encodable()
		if len(dropped) == 0 {
			return fmt.Errorf("encoding settings: %w", err)
		}
		c.logger.Warn("skipping settings that cannot be encoded", "keys", dropped)
		if data, err = json.Marshal(clean); err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
	}
	return c.store.Set(StoreKey, string(data))
}

func (c *Coordinator) savePrimary(cfg config.Configuration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host save panicked: %v", r)
		}
	}()

	if m, ok := c.primary.(Mirror); ok {
		m.Update(cfg)
	}
	return c.primary.Save()
}

// Load builds the configuration from defaults, then the fallback copy, then
// the host's in-memory object, each layer overriding the previous one. An
// unreadable or malformed fallback entry is logged and skipped.
func (c *Coordinator) Load(inMemory map[string]any) config.Configuration {
	cfg := config.Default()
	if fallback := c.loadFallback(); fallback != nil {
		cfg = config.Merge(cfg, fallback)
	}
	return config.Merge(cfg, inMemory)
}

func (c *Coordinator) loadFallback() map[string]any {
	if c.store == nil {
		return nil
	}

	raw, ok, err := c.store.Get(StoreKey)
	if err != nil {
		c.logger.Warn("fallback store unreadable, ignoring", "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		c.logger.Warn("fallback settings malformed, ignoring", "key", StoreKey)
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		c.logger.Warn("fallback settings malformed, ignoring", "key", StoreKey, "err", err)
		return nil
	}
	return m
}
