package webkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentInjector_Scripts(t *testing.T) {
	ci := NewContentInjector("Android", nil)

	scripts := ci.Scripts()
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], `"Android"`)
}
