package cmd

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/persist"
	"github.com/iiroan/qra/internal/ui"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("QRA_CONFIG", "")
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestSetWritesHostAndFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "--data-dir", dir, "--no-host=false", "--quiet",
		"set", "iconType=star", "menuStyles.title.color=#101010"))

	raw, err := config.LoadHostFile(filepath.Join(dir, "settings.yaml"), config.Namespace)
	require.NoError(t, err)
	host := config.Normalize(raw)
	assert.Equal(t, icon.KindStar, host.Icon.Kind)
	assert.Equal(t, "#101010", host.MenuStyles.Title.Color)

	fallback := persist.NewCoordinator(persist.NewFileStore(persist.DefaultStorePath(dir)), nil, nil).Load(nil)
	assert.Equal(t, host, fallback)
}

func TestSetRejectsInvalidField(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "--data-dir", dir, "--no-host=true", "--quiet", "set", "iconType=heart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iconType")
}

func TestNoHostUsesFallbackOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "--data-dir", dir, "--no-host=true", "--quiet", "set", "enabled=false"))

	raw, err := config.LoadHostFile(filepath.Join(dir, "settings.yaml"), config.Namespace)
	require.NoError(t, err)
	assert.Empty(t, raw)

	require.NoError(t, execute(t, "--data-dir", dir, "--no-host=true", "--quiet", "styles", "reset"))
	cfg := persist.NewCoordinator(persist.NewFileStore(persist.DefaultStorePath(dir)), nil, nil).Load(nil)
	assert.False(t, cfg.Enabled)
}

func TestLoggerUsesSelectedTheme(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Cleanup(func() {
		theme = ""
		ui.ApplyPreferences(ui.Preferences{})
	})

	require.NoError(t, execute(t, "--data-dir", t.TempDir(), "--no-host=true", "--quiet", "--theme", "ember", "version"))

	require.NotNil(t, logger)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	ember := ui.PaletteByName("ember")
	assert.Equal(t, ember.Primary, ui.Primary)
	assert.Equal(t, ember.Primary, levelStyles().Levels[log.InfoLevel].GetForeground())
	assert.Equal(t, ember.Error, levelStyles().Levels[log.ErrorLevel].GetForeground())
}
