package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchema_UsesTomlKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "WebShell Configuration", doc["title"])

	out := buf.String()
	assert.Contains(t, out, `"start_url"`)
	assert.Contains(t, out, `"toast_duration_ms"`)
	assert.Contains(t, out, `"no_third_party"`)
	assert.NotContains(t, out, `"StartURL"`)
}

func TestGenerateSchemaFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, appName), dirPerm))

	path, err := GenerateSchemaFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, appName, schemaFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
