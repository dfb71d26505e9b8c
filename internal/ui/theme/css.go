package theme

import (
	"fmt"
	"strings"
)

// toastLevels maps each toast class suffix to the palette variable that
// colors its stripe.
var toastLevels = []struct{ class, color string }{
	{"info", "accent"},
	{"success", "success"},
	{"warning", "warning"},
	{"error", "destructive"},
}

// GenerateCSS returns the GTK stylesheet for the toast and the error popup.
func GenerateCSS(p Palette) string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	sb.WriteString(p.ToCSSVars())
	sb.WriteString("}\n\n")

	sb.WriteString(toastCSS)
	for _, l := range toastLevels {
		fmt.Fprintf(&sb, ".toast-%s { border-left-color: var(--%s); }\n", l.class, l.color)
	}
	sb.WriteString("\n")
	sb.WriteString(errorPopupCSS)
	return sb.String()
}

const toastCSS = `.toast {
	background-color: var(--surface);
	color: var(--text);
	border: 1px solid var(--border);
	border-left-width: 4px;
	border-radius: 4px;
	padding: 8px 14px;
	margin: 0 16px 24px 16px;
	font-size: 0.875em;
}
`

const errorPopupCSS = `.error-popup-backdrop {
	background-color: alpha(black, 0.4);
}

.error-popup-container {
	background-color: var(--surface);
	border: 1px solid var(--border);
	border-radius: 4px;
	min-width: 320px;
}

.error-popup-heading {
	color: var(--destructive);
	font-weight: 600;
	padding: 12px 16px 4px 16px;
}

.error-popup-body {
	color: var(--text);
	font-size: 0.875em;
	padding: 4px 16px 12px 16px;
}

.error-popup-btn-row {
	border-top: 1px solid var(--border);
	padding: 8px 12px;
}

.error-popup-btn {
	background-image: none;
	background-color: alpha(var(--accent), 0.15);
	color: var(--accent);
	border: 1px solid alpha(var(--accent), 0.3);
	border-radius: 4px;
	padding: 6px 16px;
}

.error-popup-btn:hover {
	background-color: alpha(var(--accent), 0.25);
}
`
