package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output.
// Uses ID format for the rule identifier.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	severity := s.FormatSeverity(diag.Severity)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	))

	switch {
	case showContext && sourceLine != "":
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	case diag.HasExcerpt():
		builder.WriteString("    " + s.Dim.Render("Excerpt:") + " " +
			s.Excerpt.Render(strings.TrimSpace(diag.Excerpt)) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under the
// 1-based character column. The caret accounts for wide characters, and
// tabs before the column are kept so that the terminal expands them the
// same way on both lines.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + CaretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// CaretPadding returns the blank prefix that puts a caret under the
// 1-based character column of line.
func CaretPadding(line string, column int) string {
	var builder strings.Builder
	idx := 1
	for _, r := range line {
		if idx >= column {
			break
		}
		switch {
		case r == '\t':
			builder.WriteByte('\t')
		default:
			builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		idx++
	}
	// Columns past the end of the line, such as end of input, pad with spaces.
	if idx < column {
		builder.WriteString(strings.Repeat(" ", column-idx))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatUnknownTags lists the tags outside the element vocabulary.
func (s *Styles) FormatUnknownTags(tags []validate.UnknownTag) string {
	if len(tags) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("    " + s.Dim.Render("Unknown tags:") + "\n")
	for _, tag := range tags {
		name := "</" + tag.Name + ">"
		if tag.Opening {
			name = "<" + tag.Name + ">"
		}
		builder.WriteString(fmt.Sprintf("      %s %s\n",
			s.Location.Render(fmt.Sprintf("%d:%d", tag.Pos.Line, tag.Pos.Column)),
			s.Tag.Render(name),
		))
	}
	return builder.String()
}
