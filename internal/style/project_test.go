package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectEmptyEqualsDefaults(t *testing.T) {
	assert.Equal(t, Project(Defaults()), Project(Styles{}))
	assert.Equal(t, Reset(), Project(Styles{}))
}

func TestProjectDefaults(t *testing.T) {
	decls := Project(Defaults())
	require.Len(t, decls, 7)

	assert.Equal(t, Declaration{SurfaceMenuItem, SelectorMenuItem, "background-color", "rgba(60, 60, 60, 0.7)"}, decls[0])
	assert.Equal(t, Declaration{SurfaceMenuItem, SelectorMenuItem, "color", "#FFFFFF"}, decls[1])
	assert.Equal(t, Declaration{SurfaceMenuPanel, SelectorMenuPanel, "background-color", "rgba(0, 0, 0, 0.85)"}, decls[5])
	assert.Equal(t, Declaration{SurfaceMenuPanel, SelectorMenuPanel, "border-color", "#555555"}, decls[6])
}

func TestProjectSurfaceIsolated(t *testing.T) {
	s, err := Defaults().Set(SurfaceTitle, PropColor, "#00ff00")
	require.NoError(t, err)

	decls := ProjectSurface(s, SurfaceTitle)
	require.Len(t, decls, 2)
	for _, d := range decls {
		assert.Equal(t, SurfaceTitle, d.Surface)
		assert.Equal(t, SelectorTitle, d.Selector)
	}
	assert.Equal(t, "#00ff00", decls[0].Value)
}

func TestProjectWholesaleMatchesPerSurface(t *testing.T) {
	s, err := Styles{}.Set(SurfaceMenuItem, PropBackground, "#102030")
	require.NoError(t, err)

	var pieced []Declaration
	for _, surface := range Surfaces() {
		pieced = append(pieced, ProjectSurface(s, surface)...)
	}
	assert.Equal(t, Project(s), pieced)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, "rgba(255, 0, 16, 0.5)", RGBA("#ff0010", 0.5))
	assert.Equal(t, "rgba(255, 255, 255, 1)", RGBA("#FFFFFF", 3))
	assert.Equal(t, "rgba(0, 0, 0, 0)", RGBA("not-a-color", 0))
}
