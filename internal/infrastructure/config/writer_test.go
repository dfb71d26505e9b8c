package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SectionsInFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, DefaultConfig()))

	out := buf.String()
	app := bytes.Index(buf.Bytes(), []byte("[app]"))
	notifications := bytes.Index(buf.Bytes(), []byte("[notifications]"))
	require.GreaterOrEqual(t, app, 0)
	require.Greater(t, notifications, app)
	assert.Contains(t, out, "handler_name = 'webshell'")
}

func TestEncode_NilConfig(t *testing.T) {
	require.Error(t, Encode(&bytes.Buffer{}, nil))
}

func TestWriteConfig_DoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), filePerm))

	require.Error(t, WriteConfig(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}
