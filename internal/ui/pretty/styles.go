// Package pretty renders validation results for terminals using Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/htmlcheck/pkg/config"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indexes.
const (
	colorGray    = lipgloss.Color("8")
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorWhite   = lipgloss.Color("7")
)

// SeverityStyles holds one style per severity level.
type SeverityStyles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// For returns the style of sev, or an unstyled one for unknown levels.
func (s SeverityStyles) For(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return lipgloss.NewStyle()
	}
}

// Styles groups the renderers used by the terminal reporters.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Excerpt    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Tag        lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Rows colors whole table rows by severity.
	Rows SeverityStyles

	TableHeader    lipgloss.Style
	TableMarker    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// styler builds styles that collapse to plain text when color is off, so
// no escape sequences reach pipes or files.
type styler struct {
	enabled bool
}

func (k styler) plain() lipgloss.Style {
	return lipgloss.NewStyle()
}

func (k styler) bold() lipgloss.Style {
	if !k.enabled {
		return k.plain()
	}
	return lipgloss.NewStyle().Bold(true)
}

func (k styler) fg(color lipgloss.Color) lipgloss.Style {
	if !k.enabled {
		return k.plain()
	}
	return lipgloss.NewStyle().Foreground(color)
}

func (k styler) strong(color lipgloss.Color) lipgloss.Style {
	if !k.enabled {
		return k.plain()
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func (k styler) italic(color lipgloss.Color) lipgloss.Style {
	if !k.enabled {
		return k.plain()
	}
	return lipgloss.NewStyle().Foreground(color).Italic(true)
}

// NewStyles returns the style set for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	k := styler{enabled: colorEnabled}

	return &Styles{
		Error:   k.strong(colorRed),
		Warning: k.strong(colorYellow),
		Info:    k.strong(colorBlue),

		FilePath:   k.bold(),
		Location:   k.fg(colorGray),
		RuleID:     k.fg(colorGray),
		Message:    k.plain(),
		Excerpt:    k.italic(colorCyan),
		SourceLine: k.fg(colorWhite),
		Caret:      k.fg(colorRed),
		Tag:        k.fg(colorMagenta),

		SummaryTitle: k.bold(),
		SummaryValue: k.plain(),
		Success:      k.strong(colorGreen),
		Failure:      k.strong(colorRed),

		Rows: SeverityStyles{
			Error:   k.fg(colorRed),
			Warning: k.fg(colorYellow),
			Info:    k.fg(colorBlue),
		},

		TableHeader:    k.strong(colorWhite),
		TableMarker:    k.bold(),
		TableLegend:    k.italic(colorGray),
		TableSeparator: k.fg(colorGray),

		Dim:  k.fg(colorGray),
		Bold: k.bold(),
	}
}

// IsColorEnabled resolves a color mode against the destination writer.
// Auto mode colors only terminals, and NO_COLOR turns it off.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(writer)
}

func isTerminal(writer io.Writer) bool {
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
