// Package styles renders command output with lipgloss.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/webshell/internal/infrastructure/config"
)

// Palette is the set of colors a Theme is derived from. The values match
// the overlays the window draws so terminal output looks the same.
type Palette struct {
	Text    string
	Muted   string
	Accent  string
	Border  string
	Success string
	Error   string
}

// Theme holds the colors and the styles built from them.
type Theme struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Border lipgloss.Color

	Title        lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
}

// DefaultDarkPalette returns the dark scheme.
func DefaultDarkPalette() Palette {
	return Palette{
		Text:    "#ffffff",
		Muted:   "#909090",
		Accent:  "#4ade80",
		Border:  "#333333",
		Success: "#4ade80",
		Error:   "#ef4444",
	}
}

// DefaultLightPalette returns the light scheme.
func DefaultLightPalette() Palette {
	return Palette{
		Text:    "#1a1a1a",
		Muted:   "#666666",
		Accent:  "#22c55e",
		Border:  "#dddddd",
		Success: "#22c55e",
		Error:   "#dc2626",
	}
}

// NewTheme picks the palette from app.color_scheme. Terminals have no
// portable dark-mode query, so "system" renders dark.
func NewTheme(cfg *config.Config) *Theme {
	if cfg != nil && cfg.App.ColorScheme == "light" {
		return NewThemeFromPalette(DefaultLightPalette())
	}
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette builds every style from p.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Text:   lipgloss.Color(p.Text),
		Muted:  lipgloss.Color(p.Muted),
		Accent: lipgloss.Color(p.Accent),
		Border: lipgloss.Color(p.Border),
	}
	t.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error))
	t.SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success))
	return t
}

// RenderError formats err for the terminal.
func (t *Theme) RenderError(err error) string {
	return t.ErrorStyle.Render(IconX + " " + err.Error())
}

// RenderSuccess formats a confirmation line.
func (t *Theme) RenderSuccess(msg string) string {
	return t.SuccessStyle.Render(IconCheck + " " + msg)
}
