package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"chomsky/internal/diag"
)

var (
	colorError   = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorInfo    = lipgloss.Color("#06B6D4") // Cyan
	colorMuted   = lipgloss.Color("#6B7280") // Gray

	locationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	codeStyle     = lipgloss.NewStyle().Bold(true)
)

func severityStyle(s diag.Severity) lipgloss.Style {
	switch s {
	case diag.SeverityError:
		return lipgloss.NewStyle().Foreground(colorError).Bold(true)
	case diag.SeverityWarning:
		return lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorInfo)
}

// Diagnostics writes each diagnostic on its own line in the
// path:line:col: severity code: message layout. With styled set, the parts
// are colored for a terminal.
func Diagnostics(w io.Writer, path string, ds []diag.Diagnostic, styled bool) error {
	for _, d := range ds {
		line := d.Format(path)
		if styled {
			line = styleDiagnostic(path, d)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func styleDiagnostic(path string, d diag.Diagnostic) string {
	loc := locationStyle.Render(fmt.Sprintf("%s:%d:%d:", path, d.Range.Line, d.Range.Col))
	sev := severityStyle(d.Severity).Render(d.Severity.String())
	if d.Code != "" {
		return fmt.Sprintf("%s %s %s: %s", loc, sev, codeStyle.Render(d.Code), d.Message)
	}
	return fmt.Sprintf("%s %s: %s", loc, sev, d.Message)
}
