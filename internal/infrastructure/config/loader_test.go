package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateXDG points every XDG base directory into a temp dir.
func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_DOWNLOAD_DIR", "")
	t.Setenv("WEBSHELL_LOG_LEVEL", "")
	t.Setenv("WEBSHELL_LOG_FORMAT", "")
	return root
}

func writeConfigFile(t *testing.T, root, content string) string {
	t.Helper()
	dir := filepath.Join(root, "config", appName)
	require.NoError(t, os.MkdirAll(dir, dirPerm))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), filePerm))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "webshell", mgr.viper.GetString("bridge.handler_name"))
	assert.Equal(t, 3000, mgr.viper.GetInt("bridge.delayed_work_ms"))
	assert.Equal(t, "com.symbol.datawedge.data_string", mgr.viper.GetString("scanner.data_key"))
	assert.Equal(t, "always", mgr.viper.GetString("webkit.cookie_policy"))
}

func TestManagerLoad_CreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(root, "config", appName, "config.toml"))

	cfg := mgr.Get()
	assert.Equal(t, defaultStartURL, cfg.App.StartURL)
	assert.Equal(t, defaultDelayedWorkMs, cfg.Bridge.DelayedWorkMs)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "Downloads"), cfg.Downloads.Dir)
	assert.Equal(t, filepath.Join(root, "data", appName, "webkit"), cfg.WebKit.DataDir)
	assert.Equal(t, filepath.Join(root, "cache", appName, "webkit"), cfg.WebKit.CacheDir)
}

func TestManagerLoad_FileAndEnvOverrides(t *testing.T) {
	root := isolateXDG(t)
	writeConfigFile(t, root, `
[app]
start_url = "https://pda.example.com/"
version_name = "2.4.1"
version_code = 241

[bridge]
delayed_work_ms = 500

[downloads]
dir = "/srv/downloads"
`)
	t.Setenv("WEBSHELL_LOG_LEVEL", "debug")
	t.Setenv("WEBSHELL_SCANNER_MEMBER", "SCAN")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "https://pda.example.com/", cfg.App.StartURL)
	assert.Equal(t, "2.4.1", cfg.App.VersionName)
	assert.Equal(t, 241, cfg.App.VersionCode)
	assert.Equal(t, "/srv/downloads", cfg.Downloads.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "SCAN", cfg.Scanner.Member)
	assert.Equal(t, int64(500), cfg.DelayedWork().Milliseconds())
}

func TestManagerLoad_InvalidConfig(t *testing.T) {
	root := isolateXDG(t)
	writeConfigFile(t, root, `
[webkit]
cookie_policy = "sometimes"
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webkit.cookie_policy")
}

func TestManagerReload_KeepsPreviousOnError(t *testing.T) {
	root := isolateXDG(t)
	path := writeConfigFile(t, root, "[logging]\nlevel = \"info\"\n")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"trace\"\n"), filePerm))
	mgr.mu.Lock()
	require.NoError(t, mgr.reload())
	mgr.mu.Unlock()
	assert.Equal(t, "trace", mgr.Get().Logging.Level)

	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"loud\"\n"), filePerm))
	mgr.mu.Lock()
	require.Error(t, mgr.reload())
	mgr.mu.Unlock()
	assert.Equal(t, "trace", mgr.Get().Logging.Level)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = " DEBUG "
	cfg.WebKit.CookiePolicy = CookiePolicy("NEVER")
	cfg.Bridge.HandlerName = " webshell "
	cfg.App.ColorScheme = " Dark "

	normalizeConfig(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, CookiePolicyNever, cfg.WebKit.CookiePolicy)
	assert.Equal(t, "webshell", cfg.Bridge.HandlerName)
	assert.Equal(t, "dark", cfg.App.ColorScheme)

	cfg.App.ColorScheme = ""
	normalizeConfig(cfg)
	assert.Equal(t, "system", cfg.App.ColorScheme)
}

func TestConfig_LogFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.LogDir = "/var/log/webshell"
	assert.Empty(t, cfg.LogFile())

	cfg.Logging.EnableFileLog = true
	assert.Equal(t, "/var/log/webshell/webshell.log", cfg.LogFile())
}
