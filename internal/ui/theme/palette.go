// Package theme styles the shell's GTK overlays.
package theme

import (
	"fmt"
	"strings"
)

// Palette holds the colors the overlays are drawn with.
type Palette struct {
	Surface     string
	Text        string
	Muted       string
	Accent      string
	Border      string
	Success     string
	Warning     string
	Destructive string
}

// DefaultDarkPalette returns the dark palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Surface:     "#1a1a1b",
		Text:        "#ffffff",
		Muted:       "#909090",
		Accent:      "#4ade80",
		Border:      "#333333",
		Success:     "#4ade80",
		Warning:     "#fbbf24",
		Destructive: "#ef4444",
	}
}

// DefaultLightPalette returns the light palette.
func DefaultLightPalette() Palette {
	return Palette{
		Surface:     "#ffffff",
		Text:        "#1a1a1a",
		Muted:       "#666666",
		Accent:      "#22c55e",
		Border:      "#dddddd",
		Success:     "#22c55e",
		Warning:     "#f59e0b",
		Destructive: "#dc2626",
	}
}

// ToCSSVars renders p as CSS custom properties, one per line.
func (p Palette) ToCSSVars() string {
	vars := []struct{ name, value string }{
		{"surface", p.Surface},
		{"text", p.Text},
		{"muted", p.Muted},
		{"accent", p.Accent},
		{"border", p.Border},
		{"success", p.Success},
		{"warning", p.Warning},
		{"destructive", p.Destructive},
	}
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "  --%s: %s;\n", v.name, v.value)
	}
	return sb.String()
}
