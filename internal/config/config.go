// Package config holds the plugin configuration record and its default,
// normalize and merge semantics.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/style"
)

// Persisted keys of the configuration record.
const (
	KeyEnabled     = "enabled"
	KeyIconType    = "iconType"
	KeyCustomIcon  = "customIconUrl"
	KeyMatchColors = "matchButtonColors"
	KeyMenuStyles  = "menuStyles"
)

var (
	ErrUnknownField = errors.New("unknown settings field")
	ErrInvalidValue = errors.New("invalid settings value")
)

// Configuration is the plugin settings record.
type Configuration struct {
	Enabled         bool
	Icon            icon.Spec
	MatchHostColors bool
	MenuStyles      style.Styles

	// Extra holds persisted keys this version does not know about.
	Extra map[string]any
}

// Default returns the first-run configuration.
func Default() Configuration {
	return Configuration{
		Enabled:         true,
		Icon:            icon.Spec{Kind: icon.KindRocket},
		MatchHostColors: true,
		MenuStyles:      style.Defaults(),
	}
}

// Normalize builds a configuration from a possibly partial persisted
// record. Missing or wrongly typed fields take their default; unknown keys
// are kept in Extra.
func Normalize(raw map[string]any) Configuration {
	return Merge(Default(), raw)
}

// Merge applies patch on top of base. Top-level fields are replaced;
// menuStyles is merged field by field so one changed color keeps its
// siblings. Values of the wrong type are ignored.
func Merge(base Configuration, patch map[string]any) Configuration {
	out := base.Clone()
	for key, value := range patch {
		switch key {
		case KeyEnabled:
			if b, ok := asBool(value); ok {
				out.Enabled = b
			}
		case KeyIconType:
			if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
				out.Icon.Kind = kindFromTag(s)
			}
		case KeyCustomIcon:
			if s, ok := value.(string); ok {
				out.Icon.CustomContent = s
			}
		case KeyMatchColors:
			if b, ok := asBool(value); ok {
				out.MatchHostColors = b
			}
		case KeyMenuStyles:
			if m, ok := cloneValue(value).(map[string]any); ok {
				out.MenuStyles = out.MenuStyles.Merge(m)
			}
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[key] = cloneValue(value)
		}
	}
	return out
}

// Fields returns every field name accepted by ApplyFieldChange.
func Fields() []string {
	fields := []string{KeyEnabled, KeyIconType, KeyCustomIcon, KeyMatchColors}
	for _, surface := range style.Surfaces() {
		for _, p := range surface.Properties() {
			fields = append(fields, StyleField(surface, p))
		}
	}
	return fields
}

// StyleField returns the dotted field name of a style property.
func StyleField(surface style.Surface, p style.Property) string {
	return KeyMenuStyles + "." + string(surface) + "." + string(p)
}

// ApplyFieldChange returns cfg with exactly one field updated. Applying the
// same value twice yields the same configuration. Invalid input returns
// cfg unchanged together with an error.
func ApplyFieldChange(cfg Configuration, field string, value any) (Configuration, error) {
	out := cfg.Clone()

	switch field {
	case KeyEnabled:
		b, ok := asBool(value)
		if !ok {
			return cfg, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field, value)
		}
		out.Enabled = b
	case KeyIconType:
		s, _ := value.(string)
		kind, ok := icon.ParseKind(s)
		if !ok {
			return cfg, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field, value)
		}
		out.Icon.Kind = kind
	case KeyCustomIcon:
		s, ok := value.(string)
		if !ok {
			return cfg, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field, value)
		}
		out.Icon.CustomContent = s
	case KeyMatchColors:
		b, ok := asBool(value)
		if !ok {
			return cfg, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field, value)
		}
		out.MatchHostColors = b
	default:
		surface, prop, ok := splitStyleField(field)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		styles, err := out.MenuStyles.Set(surface, prop, value)
		if err != nil {
			if errors.Is(err, style.ErrUnknownSurface) || errors.Is(err, style.ErrUnknownProperty) {
				return cfg, fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
			return cfg, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		out.MenuStyles = styles
	}

	return out, nil
}

func splitStyleField(field string) (style.Surface, style.Property, bool) {
	parts := strings.Split(field, ".")
	if len(parts) != 3 || parts[0] != KeyMenuStyles {
		return "", "", false
	}
	return style.Surface(parts[1]), style.Property(parts[2]), true
}

// ResetStyles returns cfg with the whole styles record replaced by defaults.
func (c Configuration) ResetStyles() Configuration {
	out := c.Clone()
	out.MenuStyles = style.Defaults()
	return out
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	c.MenuStyles = c.MenuStyles.Clone()
	if c.Extra != nil {
		c.Extra = cloneMap(c.Extra)
	}
	return c
}

// Map returns the persisted shape of the configuration.
func (c Configuration) Map() map[string]any {
	out := make(map[string]any, len(c.Extra)+5)
	for k, v := range c.Extra {
		out[k] = cloneValue(v)
	}
	out[KeyEnabled] = c.Enabled
	out[KeyIconType] = string(c.Icon.Kind)
	out[KeyCustomIcon] = c.Icon.CustomContent
	out[KeyMatchColors] = c.MatchHostColors
	out[KeyMenuStyles] = c.MenuStyles.Map()
	return out
}

// Encodable returns c without the unknown values JSON cannot encode, such
// as non-finite numbers from a YAML document, and the dotted keys it
// removed.
func (c Configuration) Encodable() (Configuration, []string) {
	out := c.Clone()
	var dropped []string
	for _, k := range slices.Sorted(maps.Keys(out.Extra)) {
		if !jsonEncodable(out.Extra[k]) {
			delete(out.Extra, k)
			dropped = append(dropped, k)
		}
	}

	styles, droppedStyles := out.MenuStyles.Prune(jsonEncodable)
	out.MenuStyles = styles
	for _, k := range droppedStyles {
		dropped = append(dropped, KeyMenuStyles+"."+k)
	}
	return out, dropped
}

func jsonEncodable(v any) bool {
	_, err := json.Marshal(v)
	return err == nil
}

// MarshalJSON encodes the persisted shape.
func (c Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}

// UnmarshalJSON decodes the persisted shape and normalizes it.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Normalize(raw)
	return nil
}

// MarshalYAML encodes the persisted shape.
func (c Configuration) MarshalYAML() (any, error) {
	return c.Map(), nil
}

// UnmarshalYAML decodes the persisted shape and normalizes it.
func (c *Configuration) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = Normalize(raw)
	return nil
}

func kindFromTag(tag string) icon.Kind {
	if k, ok := icon.ParseKind(tag); ok {
		return k
	}
	// unknown tags are kept so a newer writer's choice survives a round trip
	return icon.Kind(strings.TrimSpace(tag))
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
