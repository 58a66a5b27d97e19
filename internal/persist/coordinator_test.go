package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/icon"
)

type recordingSaver struct {
	calls   int
	updated *config.Configuration
	err     error
}

func (s *recordingSaver) Save() error { s.calls++; return s.err }

func (s *recordingSaver) Update(cfg config.Configuration) { s.updated = &cfg }

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("denied") }
func (failingStore) Set(string, string) error         { return errors.New("denied") }

func changed(t *testing.T) config.Configuration {
	t.Helper()
	cfg, err := config.ApplyFieldChange(config.Default(), config.KeyIconType, "star")
	require.NoError(t, err)
	cfg, err = config.ApplyFieldChange(cfg, "menuStyles.title.color", "#123456")
	require.NoError(t, err)
	return cfg
}

func TestSaveWritesBothPaths(t *testing.T) {
	store, saver := NewMemoryStore(), &recordingSaver{}
	c := NewCoordinator(store, saver, nil)
	cfg := changed(t)

	report := c.Save(cfg)

	assert.True(t, report.OK())
	assert.NoError(t, report.Fallback)
	assert.Equal(t, 1, saver.calls)
	require.NotNil(t, saver.updated)
	assert.Equal(t, cfg, *saver.updated)
	assert.Equal(t, "Settings saved", report.Message())

	raw, ok, err := store.Get(StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	var decoded config.Configuration
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestSavePrimaryFailureKeepsFallback(t *testing.T) {
	tests := []struct {
		name  string
		saver Saver
	}{
		{"error", &recordingSaver{err: errors.New("disk full")}},
		{"panic", SaverFunc(func() error { panic("boom") })},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			c := NewCoordinator(store, tt.saver, nil)
			cfg := changed(t)

			var report Report
			require.NotPanics(t, func() { report = c.Save(cfg) })

			assert.False(t, report.OK())
			assert.True(t, report.Durable())
			assert.Equal(t, "Settings saved locally", report.Message())

			loaded := NewCoordinator(store, nil, nil).Load(nil)
			assert.Equal(t, cfg, loaded)
		})
	}

	c := NewCoordinator(NewMemoryStore(), nil, nil)
	assert.ErrorIs(t, c.Save(config.Default()).Primary, ErrNoPrimary)
	assert.False(t, c.HasPrimary())
}

func TestSaveFallbackFailureStillCallsPrimary(t *testing.T) {
	saver := &recordingSaver{}
	report := NewCoordinator(failingStore{}, saver, nil).Save(config.Default())

	assert.Error(t, report.Fallback)
	assert.True(t, report.OK())
	assert.Equal(t, 1, saver.calls)

	report = NewCoordinator(nil, nil, nil).Save(config.Default())
	assert.ErrorIs(t, report.Fallback, ErrNoFallback)
	assert.False(t, report.Durable())
	assert.Equal(t, "Settings could not be saved", report.Message())
}

func TestLoadLayering(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(StoreKey, `{"iconType":"bolt","enabled":false,"menuStyles":{"title":{"color":"#111111"}}}`))
	c := NewCoordinator(store, nil, nil)

	cfg := c.Load(map[string]any{
		"iconType":   "comment",
		"menuStyles": map[string]any{"menuItem": map[string]any{"color": "#222222"}},
	})

	assert.Equal(t, icon.KindComment, cfg.Icon.Kind, "in-memory wins")
	assert.False(t, cfg.Enabled, "fallback tops up missing fields")
	assert.Equal(t, "#111111", cfg.MenuStyles.Title.Color)
	assert.Equal(t, "#222222", cfg.MenuStyles.MenuItem.Color)
	assert.True(t, cfg.MatchHostColors)
}

func TestLoadIgnoresMalformedFallback(t *testing.T) {
	for _, raw := range []string{"{broken", `"a string"`, "[1,2]"} {
		store := NewMemoryStore()
		require.NoError(t, store.Set(StoreKey, raw))

		cfg := NewCoordinator(store, nil, nil).Load(map[string]any{"enabled": false})
		want := config.Default()
		want.Enabled = false
		assert.Equal(t, want, cfg, raw)
	}

	cfg := NewCoordinator(failingStore{}, nil, nil).Load(nil)
	assert.Equal(t, config.Default(), cfg)
}

func TestUnknownFieldsSurviveLoadAndSave(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(StoreKey,
		`{"menuStyles":{"menuItem":{"color":"#ABCDEF","fontSize":"12px"},"footer":{"bg":"#010101"}},"future":1}`))
	c := NewCoordinator(store, nil, nil)

	cfg := c.Load(nil)
	assert.Equal(t, "#ABCDEF", cfg.MenuStyles.MenuItem.Color)

	report := c.Save(cfg)
	require.NoError(t, report.Fallback)

	raw, ok, err := store.Get(StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), gjson.Get(raw, "future").Int())
	assert.Equal(t, "12px", gjson.Get(raw, "menuStyles.menuItem.fontSize").String())
	assert.Equal(t, "#ABCDEF", gjson.Get(raw, "menuStyles.menuItem.color").String())
	assert.Equal(t, "#010101", gjson.Get(raw, "menuStyles.footer.bg").String())
	assert.Equal(t, "#CCCCCC", gjson.Get(raw, "menuStyles.title.color").String())
}

func TestSaveHostOnlyValuesKeepsFallbackWorking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
extension_settings:
  qra:
    iconType: bolt
    ids: {1: a, 2: b}
    ratio: .nan
    menuStyles:
      footer: {scale: .inf}
      header: {bg: "#111111"}
`), 0o644))

	doc := config.NewHostDocument(path, config.Namespace)
	inMemory, err := doc.Load()
	require.NoError(t, err)

	store := NewMemoryStore()
	c := NewCoordinator(store, doc, nil)
	report := c.Save(c.Load(inMemory))
	require.NoError(t, report.Fallback)
	require.NoError(t, report.Primary)

	raw, ok, err := store.Get(StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bolt", gjson.Get(raw, "iconType").String())
	assert.Equal(t, "a", gjson.Get(raw, "ids.1").String())
	assert.Equal(t, "#111111", gjson.Get(raw, "menuStyles.header.bg").String())
	assert.False(t, gjson.Get(raw, "ratio").Exists())
	assert.False(t, gjson.Get(raw, "menuStyles.footer").Exists())

	saved, err := config.LoadHostFile(path, config.Namespace)
	require.NoError(t, err)
	assert.Contains(t, saved, "ratio", "the host document keeps what only YAML can hold")
}
