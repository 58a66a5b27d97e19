package config

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/style"
)

func TestNormalizeDefaults(t *testing.T) {
	for _, raw := range []map[string]any{nil, {}} {
		cfg := Normalize(raw)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, icon.KindRocket, cfg.Icon.Kind)
		assert.Equal(t, "", cfg.Icon.CustomContent)
		assert.True(t, cfg.MatchHostColors)
		assert.Equal(t, style.Defaults(), cfg.MenuStyles)
		assert.Empty(t, cfg.Extra)
	}
}

func TestNormalizeKeepsPresentFields(t *testing.T) {
	cfg := Normalize(map[string]any{
		"enabled":           false,
		"iconType":          "bolt",
		"customIconUrl":     "https://x/y.png",
		"matchButtonColors": false,
		"menuStyles": map[string]any{
			"title": map[string]any{"color": "#010101"},
		},
	})

	assert.False(t, cfg.Enabled)
	assert.Equal(t, icon.KindBolt, cfg.Icon.Kind)
	assert.Equal(t, "https://x/y.png", cfg.Icon.CustomContent)
	assert.False(t, cfg.MatchHostColors)
	assert.Equal(t, "#010101", cfg.MenuStyles.Title.Color)
	assert.Equal(t, style.Defaults().Title.Border, cfg.MenuStyles.Title.Border)
}

func TestNormalizeWrongTypesFallBack(t *testing.T) {
	cfg := Normalize(map[string]any{
		"enabled":           "maybe",
		"iconType":          42,
		"customIconUrl":     []any{"x"},
		"matchButtonColors": nil,
		"menuStyles":        "red",
	})
	assert.Equal(t, Default(), cfg)
}

func TestNormalizePreservesUnknownFields(t *testing.T) {
	cfg := Normalize(map[string]any{
		"futureFlag": true,
		"nested":     map[string]any{"a": []any{1.0, "b"}},
	})
	assert.Equal(t, true, cfg.Extra["futureFlag"])

	m := cfg.Map()
	assert.Equal(t, true, m["futureFlag"])
	assert.Equal(t, map[string]any{"a": []any{1.0, "b"}}, m["nested"])
}

func TestNormalizeKeepsUnknownKindTag(t *testing.T) {
	cfg := Normalize(map[string]any{"iconType": "heart"})
	assert.Equal(t, icon.Kind("heart"), cfg.Icon.Kind)
	assert.Equal(t, "fa-rocket", icon.Resolve(cfg.Icon).GlyphID)
}

func TestMergeNoCrossFieldErasure(t *testing.T) {
	base, err := ApplyFieldChange(Default(), "menuStyles.title.color", "#222222")
	require.NoError(t, err)
	base, err = ApplyFieldChange(base, "iconType", "star")
	require.NoError(t, err)

	merged := Merge(base, map[string]any{
		"menuStyles": map[string]any{"menuItem": map[string]any{"color": "#fff000"}},
	})

	assert.Equal(t, "#fff000", merged.MenuStyles.MenuItem.Color)
	assert.Equal(t, base.MenuStyles.MenuItem.Background, merged.MenuStyles.MenuItem.Background)
	assert.Equal(t, base.MenuStyles.MenuItem.Opacity, merged.MenuStyles.MenuItem.Opacity)
	assert.Equal(t, base.MenuStyles.Title, merged.MenuStyles.Title)
	assert.Equal(t, base.MenuStyles.EmptyHint, merged.MenuStyles.EmptyHint)
	assert.Equal(t, base.MenuStyles.MenuPanel, merged.MenuStyles.MenuPanel)
	assert.Equal(t, icon.KindStar, merged.Icon.Kind)
	assert.Equal(t, "#FFFFFF", base.MenuStyles.MenuItem.Color, "base must not change")
}

func TestMergeTopLevelIsShallow(t *testing.T) {
	base := Normalize(map[string]any{"extra": map[string]any{"a": 1, "b": 2}})
	merged := Merge(base, map[string]any{"extra": map[string]any{"c": 3}})
	assert.Equal(t, map[string]any{"c": 3}, merged.Extra["extra"])
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, base.Extra["extra"])
}

func TestApplyFieldChange(t *testing.T) {
	tests := []struct {
		field string
		value any
		check func(t *testing.T, c Configuration)
	}{
		{"enabled", false, func(t *testing.T, c Configuration) { assert.False(t, c.Enabled) }},
		{"enabled", "false", func(t *testing.T, c Configuration) { assert.False(t, c.Enabled) }},
		{"iconType", "custom", func(t *testing.T, c Configuration) { assert.Equal(t, icon.KindCustom, c.Icon.Kind) }},
		{"customIconUrl", "<svg></svg>", func(t *testing.T, c Configuration) {
			assert.Equal(t, "<svg></svg>", c.Icon.CustomContent)
		}},
		{"matchButtonColors", false, func(t *testing.T, c Configuration) { assert.False(t, c.MatchHostColors) }},
		{"menuStyles.menuPanel.opacity", 0.3, func(t *testing.T, c Configuration) {
			assert.Equal(t, 0.3, *c.MenuStyles.MenuPanel.Opacity)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			base := Default()
			once, err := ApplyFieldChange(base, tt.field, tt.value)
			require.NoError(t, err)
			tt.check(t, once)

			twice, err := ApplyFieldChange(once, tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
			assert.Equal(t, Default(), base)
		})
	}
}

func TestApplyFieldChangeTouchesOneField(t *testing.T) {
	base := Normalize(map[string]any{"iconType": "custom", "customIconUrl": "keep-me", "other": "x"})
	changed, err := ApplyFieldChange(base, "iconType", "bolt")
	require.NoError(t, err)

	want := base.Clone()
	want.Icon.Kind = icon.KindBolt
	assert.Equal(t, want, changed)
	assert.Equal(t, "keep-me", changed.Icon.CustomContent)
}

func TestApplyFieldChangeErrors(t *testing.T) {
	tests := []struct {
		field   string
		value   any
		wantErr error
	}{
		{"nope", 1, ErrUnknownField},
		{"menuStyles.footer.color", "#000000", ErrUnknownField},
		{"menuStyles.emptyHint.opacity", 0.5, ErrUnknownField},
		{"menuStyles.title", "#000000", ErrUnknownField},
		{"enabled", 1, ErrInvalidValue},
		{"iconType", "heart", ErrInvalidValue},
		{"customIconUrl", 5, ErrInvalidValue},
		{"menuStyles.title.color", "blue", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			base := Default()
			got, err := ApplyFieldChange(base, tt.field, tt.value)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, base, got)
		})
	}
}

func TestFieldsAreAllAccepted(t *testing.T) {
	for _, field := range Fields() {
		_, err := ApplyFieldChange(Default(), field, "zzz")
		assert.NotErrorIs(t, err, ErrUnknownField, field)
	}
}

func TestResetStyles(t *testing.T) {
	cfg, err := ApplyFieldChange(Default(), "menuStyles.menuItem.bg", "#abcdef")
	require.NoError(t, err)
	assert.Equal(t, style.Defaults(), cfg.ResetStyles().MenuStyles)
	assert.Equal(t, "#abcdef", cfg.MenuStyles.MenuItem.Background)
}

func TestJSONRoundTrip(t *testing.T) {
	cfg := Normalize(map[string]any{
		"enabled":       false,
		"iconType":      "custom",
		"customIconUrl": "data:image/png;base64,AAA",
		"unknown":       "kept",
	})
	cfg, err := ApplyFieldChange(cfg, "menuStyles.menuItem.opacity", 0.2)
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded Configuration
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg, err := ApplyFieldChange(Default(), "menuStyles.title.border", "#0a0b0c")
	require.NoError(t, err)
	cfg, err = ApplyFieldChange(cfg, "menuStyles.menuPanel.opacity", 1)
	require.NoError(t, err)

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var decoded Configuration
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestPersistedShapeKeys(t *testing.T) {
	m := Default().Map()
	for _, key := range []string{"enabled", "iconType", "customIconUrl", "matchButtonColors", "menuStyles"} {
		assert.Contains(t, m, key)
	}
	styles, ok := m["menuStyles"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, styles, "menuItem")
	assert.Contains(t, styles, "menuPanel")
}

func TestNormalizeStringifiesYAMLKeys(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("ids: {1: a, 2: b}\nmenuStyles:\n  footer: {1: x}\n"), &raw))

	cfg := Normalize(raw)
	assert.Equal(t, map[string]any{"1": "a", "2": "b"}, cfg.Extra["ids"])
	assert.Equal(t, map[string]any{"1": "x"}, cfg.MenuStyles.Extra["footer"])

	_, err := json.Marshal(cfg)
	require.NoError(t, err)
}

func TestEncodable(t *testing.T) {
	cfg := Normalize(map[string]any{
		"ratio": math.NaN(),
		"kept":  "yes",
		"menuStyles": map[string]any{
			"footer":   map[string]any{"scale": math.Inf(1)},
			"menuItem": map[string]any{"weight": math.Inf(-1), "fontSize": "12px"},
		},
	})
	_, err := json.Marshal(cfg)
	require.Error(t, err)

	clean, dropped := cfg.Encodable()
	assert.Equal(t, []string{"ratio", "menuStyles.footer", "menuStyles.menuItem.weight"}, dropped)
	assert.Equal(t, map[string]any{"kept": "yes"}, clean.Extra)
	assert.Equal(t, map[string]any{"fontSize": "12px"}, clean.MenuStyles.MenuItem.Extra)
	assert.Contains(t, cfg.Extra, "ratio", "receiver must not change")

	_, err = json.Marshal(clean)
	require.NoError(t, err)

	_, dropped = Default().Encodable()
	assert.Empty(t, dropped)
}
