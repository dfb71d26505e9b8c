package desktop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncher_InstallAndRemove(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	l := &Launcher{}
	ctx := context.Background()

	path, err := l.Install(ctx)
	require.NoError(t, err)
	assert.Equal(t, desktopFileName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "StartupWMClass=webshell")
	assert.Contains(t, string(data), " run\n")

	require.NoError(t, l.Remove(ctx))
	assert.NoFileExists(t, path)
	require.NoError(t, l.Remove(ctx), "removing twice is not an error")
}
