package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDownloadDir(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		root := isolateXDG(t)
		t.Setenv("XDG_DOWNLOAD_DIR", "$HOME/Incoming")

		dir, err := GetDownloadDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Incoming"), dir)
	})

	t.Run("user-dirs file", func(t *testing.T) {
		root := isolateXDG(t)
		cfgHome := filepath.Join(root, "config")
		require.NoError(t, os.MkdirAll(cfgHome, dirPerm))
		content := "# generated\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\nXDG_DOWNLOAD_DIR=\"$HOME/Téléchargements\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(cfgHome, "user-dirs.dirs"), []byte(content), filePerm))

		dir, err := GetDownloadDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Téléchargements"), dir)
	})

	t.Run("fallback", func(t *testing.T) {
		root := isolateXDG(t)

		dir, err := GetDownloadDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Downloads"), dir)
	})
}

func TestGetXDGDirs_DevMode(t *testing.T) {
	isolateXDG(t)
	t.Setenv("ENV", "dev")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".dev", appName), dirs.ConfigHome)
	assert.Equal(t, dirs.ConfigHome, dirs.DataHome)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u/Downloads", expandHome("~/Downloads", "/home/u"))
	assert.Equal(t, "/home/u/Downloads", expandHome("$HOME/Downloads", "/home/u"))
	assert.Equal(t, "/data/dl", expandHome("/data/dl", "/home/u"))
}
