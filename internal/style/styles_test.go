package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreComplete(t *testing.T) {
	def := Defaults()
	for _, surface := range Surfaces() {
		ss := def.Get(surface)
		for _, p := range surface.Properties() {
			_, ok := ss.Value(p)
			assert.Truef(t, ok, "default %s.%s missing", surface, p)
		}
	}
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		prop    Property
		value   any
		wantErr error
	}{
		{name: "valid color", surface: SurfaceMenuItem, prop: PropColor, value: "#ff00aa"},
		{name: "short hex", surface: SurfaceMenuItem, prop: PropColor, value: "#fff", wantErr: ErrInvalidColor},
		{name: "missing hash", surface: SurfaceTitle, prop: PropBorder, value: "444444", wantErr: ErrInvalidColor},
		{name: "non string color", surface: SurfaceTitle, prop: PropColor, value: 12, wantErr: ErrInvalidColor},
		{name: "unsupported property", surface: SurfaceEmptyHint, prop: PropOpacity, value: 0.5, wantErr: ErrUnknownProperty},
		{name: "unknown surface", surface: Surface("footer"), prop: PropColor, value: "#000000", wantErr: ErrUnknownSurface},
		{name: "opacity string", surface: SurfaceMenuPanel, prop: PropOpacity, value: "0.3"},
		{name: "opacity garbage", surface: SurfaceMenuPanel, prop: PropOpacity, value: "half", wantErr: ErrInvalidOpacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Defaults()
			after, err := before.Set(tt.surface, tt.prop, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSetOpacityClamps(t *testing.T) {
	s, err := Styles{}.Set(SurfaceMenuItem, PropOpacity, 1.7)
	require.NoError(t, err)
	require.NotNil(t, s.MenuItem.Opacity)
	assert.Equal(t, 1.0, *s.MenuItem.Opacity)

	s, err = s.Set(SurfaceMenuItem, PropOpacity, -0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *s.MenuItem.Opacity)

	s, err = s.Set(SurfaceMenuItem, PropOpacity, 0.35)
	require.NoError(t, err)
	assert.Equal(t, 0.35, *s.MenuItem.Opacity)
}

func TestMergeKeepsSiblings(t *testing.T) {
	base := Defaults()
	merged := base.Merge(map[string]any{
		"menuItem": map[string]any{"color": "#123456"},
	})

	assert.Equal(t, "#123456", merged.MenuItem.Color)
	assert.Equal(t, base.MenuItem.Background, merged.MenuItem.Background)
	assert.Equal(t, *base.MenuItem.Opacity, *merged.MenuItem.Opacity)
	assert.Equal(t, base.Title, merged.Title)
	assert.Equal(t, base.EmptyHint, merged.EmptyHint)
	assert.Equal(t, base.MenuPanel, merged.MenuPanel)
	assert.Equal(t, "#FFFFFF", base.MenuItem.Color, "receiver must not change")
}

func TestMergeIgnoresInvalid(t *testing.T) {
	merged := Defaults().Merge(map[string]any{
		"title":     map[string]any{"color": "red"},
		"menuItem":  map[string]any{"opacity": "lots"},
		"menuPanel": "nope",
	})
	assert.Equal(t, Defaults(), merged)
}

func TestMergeKeepsUnknownFields(t *testing.T) {
	merged := Defaults().Merge(map[string]any{
		"menuItem": map[string]any{"color": "#ABCDEF", "fontSize": "12px"},
		"footer":   map[string]any{"bg": "#010101"},
		"version":  2,
	})

	assert.Equal(t, "#ABCDEF", merged.MenuItem.Color)
	assert.Equal(t, map[string]any{"fontSize": "12px"}, merged.MenuItem.Extra)
	assert.Equal(t, map[string]any{"footer": map[string]any{"bg": "#010101"}, "version": 2}, merged.Extra)
	assert.Nil(t, Defaults().MenuItem.Extra)

	out := merged.Map()
	assert.Equal(t, map[string]any{"bg": "#010101"}, out["footer"])
	assert.Equal(t, 2, out["version"])
	item, ok := out["menuItem"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12px", item["fontSize"])
	assert.Equal(t, "#ABCDEF", item["color"])

	assert.Equal(t, merged, FromMap(out), "unknown fields survive a map round trip")
}

func TestMergeUnknownSurfaceFieldByField(t *testing.T) {
	base := Defaults().Merge(map[string]any{
		"footer": map[string]any{"bg": "#010101", "color": "#020202"},
	})
	merged := base.Merge(map[string]any{
		"footer": map[string]any{"color": "#030303"},
	})

	assert.Equal(t, map[string]any{"bg": "#010101", "color": "#030303"}, merged.Extra["footer"])
	assert.Equal(t, map[string]any{"bg": "#010101", "color": "#020202"}, base.Extra["footer"], "receiver must not change")
}

func TestMergeStringifiesYAMLKeys(t *testing.T) {
	merged := Styles{}.Merge(map[string]any{
		"footer":   map[any]any{1: "a", "bg": "#010101"},
		"menuItem": map[any]any{"color": "#111111", 2: "b"},
	})

	assert.Equal(t, map[string]any{"1": "a", "bg": "#010101"}, merged.Extra["footer"])
	assert.Equal(t, "#111111", merged.MenuItem.Color)
	assert.Equal(t, map[string]any{"2": "b"}, merged.MenuItem.Extra)
}

func TestPrune(t *testing.T) {
	s := Defaults().Merge(map[string]any{
		"footer":   "keep",
		"broken":   "drop",
		"menuItem": map[string]any{"fontSize": "drop", "weight": "keep"},
	})

	pruned, dropped := s.Prune(func(v any) bool { return v != "drop" })

	assert.Equal(t, []string{"broken", "menuItem.fontSize"}, dropped)
	assert.Equal(t, map[string]any{"footer": "keep"}, pruned.Extra)
	assert.Equal(t, map[string]any{"weight": "keep"}, pruned.MenuItem.Extra)
	assert.Contains(t, s.Extra, "broken", "receiver must not change")
}

func TestMapRoundTrip(t *testing.T) {
	s, err := Styles{}.Set(SurfaceMenuPanel, PropOpacity, 0.4)
	require.NoError(t, err)
	s, err = s.Set(SurfaceTitle, PropColor, "#abcdef")
	require.NoError(t, err)

	assert.Equal(t, s, FromMap(s.Map()))
	assert.Equal(t, Defaults(), FromMap(Defaults().Map()))
}

func TestResolvedFillsDefaults(t *testing.T) {
	s, err := Styles{}.Set(SurfaceEmptyHint, PropColor, "#010203")
	require.NoError(t, err)

	r := s.Resolved()
	assert.Equal(t, "#010203", r.EmptyHint.Color)
	assert.Equal(t, Defaults().MenuItem, r.MenuItem)
	assert.Equal(t, Defaults().MenuPanel, r.MenuPanel)
}

func TestCloneIsDeep(t *testing.T) {
	orig := Defaults()
	clone := orig.Clone()
	*clone.MenuItem.Opacity = 0.1
	assert.Equal(t, 0.7, *orig.MenuItem.Opacity)

	withExtras := Defaults().Merge(map[string]any{
		"footer":    map[string]any{"bg": "#010101"},
		"menuPanel": map[string]any{"shadow": map[string]any{"x": 1}},
	})
	copied := withExtras.Clone()
	copied.Extra["footer"].(map[string]any)["bg"] = "#ffffff"
	copied.MenuPanel.Extra["shadow"].(map[string]any)["x"] = 2
	assert.Equal(t, "#010101", withExtras.Extra["footer"].(map[string]any)["bg"])
	assert.Equal(t, 1, withExtras.MenuPanel.Extra["shadow"].(map[string]any)["x"])
}
