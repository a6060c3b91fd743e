package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warnings) in 2 files, 2 reports written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))) +
			"\n"
	}

	var parts []string

	issueWord := plural(stats.DiagnosticsTotal, "issue", "issues")

	var severityParts []string
	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos := stats.DiagnosticsBySeverity["info"]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.DiagnosticsTotal, issueWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord))
	}
	parts[0] += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	if stats.ReportsWritten > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d %s written",
			stats.ReportsWritten, plural(stats.ReportsWritten, "report", "reports"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Dim.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.ReportsWritten > 0 {
		builder.WriteString("  Reports written:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.ReportsWritten)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

	if errors := stats.DiagnosticsBySeverity["error"]; errors > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.DiagnosticsBySeverity["warning"]; warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.DiagnosticsBySeverity["info"]; infos > 0 {
		builder.WriteString("    Info:            " +
			s.Info.Render(strconv.Itoa(infos)) + "\n")
	}
	if stats.UnknownTags > 0 {
		builder.WriteString("  Unknown tags:      " +
			s.Tag.Render(strconv.Itoa(stats.UnknownTags)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Validation failed"))
	case stats.DiagnosticsTotal > 0:
		builder.WriteString(s.Warning.Render("Validation passed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Validation passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
