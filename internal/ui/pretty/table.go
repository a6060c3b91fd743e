package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

const (
	defaultTermWidth = 100
	cellGap          = "  "
	markerWidth      = 1
	ellipsis         = "..."
	heavyRule        = "="
	lightRule        = "-"
)

// column identifies one table column.
type column int

const (
	colFile column = iota
	colLoc
	colMessage
	colRule
)

type columnSpec struct {
	title string
	min   int
	// keepTail truncates from the left, so file names stay visible.
	keepTail bool
}

var columnSpecs = [...]columnSpec{
	colFile:    {title: "FILE", min: 20, keepTail: true},
	colLoc:     {title: "LOC", min: 7},
	colMessage: {title: "MESSAGE", min: 30},
	colRule:    {title: "RULE", min: 8},
}

var (
	combinedColumns = []column{colFile, colLoc, colMessage, colRule}
	perFileColumns  = []column{colLoc, colMessage, colRule}

	// shrinkOrder lists the columns narrowed when the table overflows.
	shrinkOrder = []column{colMessage, colFile}
)

// severityNouns orders severities for tallies, most severe first.
var severityNouns = []struct {
	severity  config.Severity
	one, many string
}{
	{config.SeverityError, "error", "errors"},
	{config.SeverityWarning, "warning", "warnings"},
	{config.SeverityInfo, "info", "info"},
}

// TableRow is one diagnostic as shown in the table.
type TableRow struct {
	File     string
	Location string
	Message  string
	RuleID   string
	RuleName string
	Severity config.Severity
}

// DiagnosticToTableRow converts a diagnostic to a table row.
func DiagnosticToTableRow(path string, diag *lint.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Message:  diag.Message,
		RuleID:   diag.RuleID,
		RuleName: diag.RuleName,
		Severity: diag.Severity,
	}
}

// TableFormatter lays diagnostics out as fixed-width columns that fit the
// terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat
}

// NewTableFormatter creates a table formatter. Rule identifiers are shown
// as IDs until WithRuleFormat says otherwise.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   config.RuleFormatID,
	}
}

// WithRuleFormat sets how the RULE column names rules.
func (t *TableFormatter) WithRuleFormat(format config.RuleFormat) *TableFormatter {
	if format != "" {
		t.ruleFormat = format
	}
	return t
}

// FormatTable renders every file with diagnostics in one table, one group
// per file. It returns "" when there is nothing to show.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if rows := fileRows(file); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	layout := t.layout(combinedColumns, slices.Concat(groups...))
	return t.render(layout, groups) + t.legend() + "\n"
}

// FormatFileTable renders one file's diagnostics without the FILE column,
// followed by the file's severity tally.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := fileRows(file)
	if len(rows) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, row := range rows {
		counts[string(row.Severity)]++
	}

	layout := t.layout(perFileColumns, rows)
	return t.render(layout, [][]TableRow{rows}) + " " + strings.Join(t.tally(counts), " | ") + "\n"
}

// FormatTableSummary renders the run totals on one line.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}

	if stats.FilesFailed > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	parts = append(parts, t.tally(stats.DiagnosticsBySeverity)...)
	if stats.UnknownTags > 0 {
		parts = append(parts, t.styles.Tag.Render(fmt.Sprintf("%d unknown %s",
			stats.UnknownTags, plural(stats.UnknownTags, "tag", "tags"))))
	}
	if stats.ReportsWritten > 0 {
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d %s written",
			stats.ReportsWritten, plural(stats.ReportsWritten, "report", "reports"))))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// tally renders non-zero severity counts, most severe first.
func (t *TableFormatter) tally(counts map[string]int) []string {
	badges := SeverityStyles{Error: t.styles.Error, Warning: t.styles.Warning, Info: t.styles.Info}

	var parts []string
	for _, noun := range severityNouns {
		n := counts[string(noun.severity)]
		if n == 0 {
			continue
		}
		parts = append(parts, badges.For(noun.severity).Render(fmt.Sprintf("%d %s", n, plural(n, noun.one, noun.many))))
	}
	return parts
}

func fileRows(file runner.FileOutcome) []TableRow {
	if file.Result == nil || file.Result.FileResult == nil {
		return nil
	}

	diags := file.Result.Diagnostics
	rows := make([]TableRow, 0, len(diags))
	for i := range diags {
		rows = append(rows, DiagnosticToTableRow(file.Path, &diags[i]))
	}
	return rows
}

// tableLayout is a set of columns with their resolved widths.
type tableLayout struct {
	columns []column
	widths  []int
}

// width is the printed width of one line: a leading space, each cell and
// its gap, then the severity marker.
func (l tableLayout) width() int {
	total := 1 + markerWidth
	for _, w := range l.widths {
		total += w + len(cellGap)
	}
	return total
}

// layout sizes columns to their widest cell, then narrows the columns in
// shrinkOrder until the table fits the terminal or hits their minimums.
func (t *TableFormatter) layout(columns []column, rows []TableRow) tableLayout {
	l := tableLayout{columns: columns, widths: make([]int, len(columns))}

	for i, col := range columns {
		def := columnSpecs[col]
		l.widths[i] = max(def.min, runewidth.StringWidth(def.title))
		for _, row := range rows {
			l.widths[i] = max(l.widths[i], runewidth.StringWidth(t.cell(row, col)))
		}
	}

	for _, col := range shrinkOrder {
		excess := l.width() - t.termWidth
		if excess <= 0 {
			break
		}
		if i := slices.Index(columns, col); i >= 0 {
			l.widths[i] = max(columnSpecs[col].min, l.widths[i]-excess)
		}
	}

	return l
}

func (t *TableFormatter) cell(row TableRow, col column) string {
	switch col {
	case colFile:
		return row.File
	case colLoc:
		return row.Location
	case colMessage:
		return row.Message
	case colRule:
		return config.FormatRuleID(t.ruleFormat, row.RuleID, row.RuleName)
	default:
		return ""
	}
}

func (t *TableFormatter) render(l tableLayout, groups [][]TableRow) string {
	var builder strings.Builder

	separator := func(char string) {
		builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(char, l.width())))
		builder.WriteByte('\n')
	}

	titles := make([]string, len(l.columns))
	for i, col := range l.columns {
		titles[i] = columnSpecs[col].title
	}
	builder.WriteString(t.styles.TableHeader.Render(l.line(titles, " ")))
	builder.WriteByte('\n')
	separator(heavyRule)

	cells := make([]string, len(l.columns))
	for i, group := range groups {
		if i > 0 {
			separator(lightRule)
		}
		for _, row := range group {
			for j, col := range l.columns {
				cells[j] = t.cell(row, col)
			}
			marker := t.styles.TableMarker.Render(severityMarker(row.Severity))
			builder.WriteString(t.styles.Rows.For(row.Severity).Render(l.line(cells, marker)))
			builder.WriteByte('\n')
		}
	}

	separator(heavyRule)
	return builder.String()
}

// line fits each cell to its column and appends the marker.
func (l tableLayout) line(cells []string, marker string) string {
	var builder strings.Builder
	builder.WriteByte(' ')
	for i, cell := range cells {
		width := l.widths[i]
		if columnSpecs[l.columns[i]].keepTail {
			cell = truncateHead(cell, width)
		} else {
			cell = truncateTail(cell, width)
		}
		builder.WriteString(runewidth.FillRight(cell, width))
		builder.WriteString(cellGap)
	}
	builder.WriteString(marker)
	return builder.String()
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: E = error | W = warning | I = info")
	}

	samples := make([]string, 0, len(severityNouns))
	for _, noun := range severityNouns {
		samples = append(samples, t.styles.Rows.For(noun.severity).Render(" "+noun.one+" "))
	}
	return t.styles.TableLegend.Render(" Legend: " + strings.Join(samples, "  "))
}

func severityMarker(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "E"
	case config.SeverityWarning:
		return "W"
	case config.SeverityInfo:
		return "I"
	default:
		return " "
	}
}

// truncateTail cuts str to width display cells, ending in an ellipsis.
func truncateTail(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(str, width, "")
	}
	return runewidth.Truncate(str, width, ellipsis)
}

// truncateHead cuts str to width display cells, keeping its end.
func truncateHead(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	if width <= len(ellipsis) {
		return lastCells(str, width)
	}
	return ellipsis + lastCells(str, width-len(ellipsis))
}

// lastCells returns the longest suffix of str at most width cells wide.
func lastCells(str string, width int) string {
	runes := []rune(str)
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
