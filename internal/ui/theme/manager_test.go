package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColorScheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	assert.True(t, ResolveColorScheme("dark", light))
	assert.True(t, ResolveColorScheme("prefer-dark", light))
	assert.False(t, ResolveColorScheme("Light", dark))
	assert.True(t, ResolveColorScheme("system", dark))
	assert.False(t, ResolveColorScheme("system", light))
	assert.False(t, ResolveColorScheme("", nil))
}

func TestManager_PaletteFollowsScheme(t *testing.T) {
	ctx := context.Background()

	m := NewManager(ctx, "dark", nil)
	assert.True(t, m.PrefersDark())
	assert.Equal(t, DefaultDarkPalette(), m.CurrentPalette())

	m = NewManager(ctx, "light", nil)
	assert.False(t, m.PrefersDark())
	assert.Equal(t, DefaultLightPalette(), m.CurrentPalette())
}

func TestGenerateCSS(t *testing.T) {
	css := GenerateCSS(DefaultDarkPalette())

	assert.Contains(t, css, "--destructive: #ef4444;")
	for _, class := range []string{".toast-info", ".toast-success", ".toast-warning", ".toast-error", ".error-popup-container", ".error-popup-btn"} {
		assert.Contains(t, css, class)
	}
}

func TestManager_SetScheme(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, "light", nil)

	assert.True(t, m.SetScheme(ctx, "dark"))
	assert.Equal(t, DefaultDarkPalette(), m.CurrentPalette())
	assert.False(t, m.SetScheme(ctx, "prefer-dark"))

	assert.True(t, m.SetScheme(ctx, ""))
	assert.False(t, m.PrefersDark(), "system without a detector reads light")
}
