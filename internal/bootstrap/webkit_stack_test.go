package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/infrastructure/config"
)

func TestBuildWebKitContextOptions_MapsDirsAndCookiePolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WebKit.DataDir = "/tmp/data"
	cfg.WebKit.CacheDir = "/tmp/cache"
	cfg.WebKit.CookiePolicy = config.CookiePolicyNever

	opts, err := buildWebKitContextOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/data", opts.DataDir)
	assert.Equal(t, "/tmp/cache", opts.CacheDir)
	assert.Equal(t, port.WebKitCookiePolicyNever, opts.CookiePolicy)
}

func TestBuildWebKitContextOptions_FallsBackToXDGDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	cfg := config.DefaultConfig()
	cfg.WebKit.DataDir = ""
	cfg.WebKit.CacheDir = ""

	opts, err := buildWebKitContextOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "webshell", "webkit"), opts.DataDir)
	assert.Equal(t, filepath.Join(home, "cache", "webshell", "webkit"), opts.CacheDir)
	assert.Equal(t, port.WebKitCookiePolicyAlways, opts.CookiePolicy)
}

func TestWebKitStack_CloseNil(t *testing.T) {
	var s *WebKitStack
	assert.NoError(t, s.Close())
	assert.NoError(t, (&WebKitStack{}).Close())
}
