package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/analysis"
	"github.com/yaklabco/htmlcheck/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	ruleColWidth      = 30 // Width of the rule name column.
	fileColWidth      = 52 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 8  // Width of warnings column.
	maxRuleNameLength = 28 // Maximum characters for rule name before truncation.
	maxFilePathLength = 50 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given display width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if n := runewidth.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft pads a string to the given display width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if n := runewidth.StringWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	r.renderErrors(report.Errors)

	if report.Totals.Issues == 0 {
		if len(report.Errors) == 0 {
			fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		}
		return nil
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderErrors(errs []analysis.FileError) {
	for _, fileErr := range errs {
		fmt.Fprintf(r.out, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.FilePath),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}
	if len(errs) > 0 {
		fmt.Fprintln(r.out)
	}
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, rule := range rules {
		label := config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)
		if runewidth.StringWidth(label) > maxRuleNameLength {
			label = runewidth.Truncate(label, maxRuleNameLength, "…")
		}

		padded := padRight(label, ruleColWidth)
		styled := r.styles.Rows.For(worstSeverity(rule.Errors, rule.Warnings)).Render(padded)

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(len(rule.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Unknown", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if runewidth.StringWidth(path) > maxFilePathLength {
			path = "…" + tailWidth(path, maxFilePathLength-1)
		}

		padded := padRight(path, fileColWidth)
		styled := r.styles.Rows.For(worstSeverity(file.Errors, file.Warnings)).Render(padded)

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			padLeft(strconv.Itoa(file.Unknown), warnColWidth),
		)
	}
}

// tailWidth returns the longest suffix of s that fits in width columns.
func tailWidth(s string, width int) string {
	runes := []rune(s)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	return string(runes[start:])
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	line := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}
	line += fmt.Sprintf(" in %d %s", totals.FilesWithIssues, fileWord)

	if totals.FilesFailed > 0 {
		line += fmt.Sprintf(", %d failed", totals.FilesFailed)
	}
	if totals.UnknownTags > 0 {
		line += fmt.Sprintf(", %d unknown tags", totals.UnknownTags)
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

// worstSeverity picks the row color for a count pair; "" renders plain.
func worstSeverity(errors, warnings int) config.Severity {
	switch {
	case errors > 0:
		return config.SeverityError
	case warnings > 0:
		return config.SeverityWarning
	default:
		return ""
	}
}
