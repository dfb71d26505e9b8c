package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	src := `<html><head><title> Orders </title><script>var a = 1;</script></head>
<body><h1>Hello</h1><p>world</p>
<script src="/app.js"></script>
<script type="application/json">{"x":1}</script>
<script>var b = 2;</script>
<style>p { color: red }</style>
</body></html>`

	p, err := parsePage(src)
	require.NoError(t, err)

	assert.Equal(t, "Orders", p.Title)
	assert.Equal(t, []string{"var a = 1;", "var b = 2;"}, p.Scripts)
	assert.Contains(t, p.Text, "Hello")
	assert.Contains(t, p.Text, "world")
	assert.NotContains(t, p.Text, "color")
	assert.NotContains(t, p.Text, "var b")
}

func TestParsePage_BareJSONBody(t *testing.T) {
	p, err := parsePage(`{"status":"error","message":"Session expired"}`)
	require.NoError(t, err)

	assert.Equal(t, `{"status":"error","message":"Session expired"}`, p.Text)
	assert.Empty(t, p.Scripts)
}
