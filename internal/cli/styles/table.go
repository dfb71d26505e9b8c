package styles

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/webshell/internal/domain/entity"
)

// NewStyledTable creates a themed table model. Commands only render its
// View, so the table is built unfocused with no selection highlight.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = lipgloss.NewStyle().Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// DownloadTableColumns returns columns for the download history table.
func DownloadTableColumns() []table.Column {
	return []table.Column{
		{Title: "File", Width: 32},
		{Title: "Type", Width: 24},
		{Title: "Route", Width: 6},
		{Title: "Size", Width: 9},
		{Title: "Saved", Width: 16},
	}
}

// DownloadRow converts a record to a table row.
func DownloadRow(rec *entity.DownloadRecord) table.Row {
	return table.Row{
		displayName(rec),
		rec.MIMEType,
		rec.Route,
		FormatBytes(rec.Size),
		rec.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
}

func displayName(rec *entity.DownloadRecord) string {
	if rec.Path != "" {
		return filepath.Base(rec.Path)
	}
	return rec.Filename
}

// DownloadsRenderer renders `webshell downloads` output.
type DownloadsRenderer struct {
	theme *Theme
}

// NewDownloadsRenderer creates a renderer with the given theme.
func NewDownloadsRenderer(theme *Theme) *DownloadsRenderer {
	return &DownloadsRenderer{theme: theme}
}

// Render prints records as a table, newest first.
func (r *DownloadsRenderer) Render(records []*entity.DownloadRecord) string {
	if len(records) == 0 {
		return r.theme.Subtle.Render("No downloads recorded yet.")
	}

	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, DownloadRow(rec))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n", r.theme.Highlight.Render(IconDownload), r.theme.Title.Render("Downloads")))
	b.WriteString(NewStyledTable(r.theme, DownloadTableColumns(), rows).View())
	return b.String()
}

// FormatBytes renders a size with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// RelativeTime renders how long ago t was.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
