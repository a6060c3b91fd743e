package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

const (
	// fallbackTermWidth applies when the writer is not a terminal.
	fallbackTermWidth = 100

	overallRuleWidth = 80
)

// TableReporter prints diagnostics as an aligned table, either one table
// for the run or one per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableReporter creates a table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:   opts,
		styles: styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)).
			WithRuleFormat(opts.RuleFormat),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		r.summaryLine(bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		}
	}

	shown := countDiagnostics(result)
	if shown == 0 {
		if !result.HasErrors() {
			r.summaryLine(bw, "\n"+r.styles.Success.Render("All files passed!")+"\n"+
				r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
		}
		return 0, nil
	}

	totals := r.formatter.FormatTableSummary(result.Stats, runDuration(result.Stats.Duration))
	if r.opts.PerFile {
		r.writePerFile(bw, result, totals)
	} else {
		fmt.Fprint(bw, r.formatter.FormatTable(result))
		r.summaryLine(bw, totals+"\n")
	}

	return shown, nil
}

func (r *TableReporter) writePerFile(w io.Writer, result *runner.Result, totals string) {
	tables := 0
	for _, file := range result.Files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}
		tables++

		fmt.Fprintf(w, "\n%s\n%s", r.styles.Bold.Render(displayPath(file.Path, r.opts.WorkingDir)), table)
		if file.Result.ReportWritten {
			fmt.Fprintln(w, r.styles.Dim.Render("Report: "+file.Result.ReportPath))
		}
	}

	if tables > 0 {
		r.summaryLine(w, "\n"+
			r.styles.TableSeparator.Render(strings.Repeat("═", overallRuleWidth))+"\n"+
			r.styles.Bold.Render("Overall Summary")+"\n"+
			totals)
	}
}

// summaryLine writes text as its own line unless summaries are off.
func (r *TableReporter) summaryLine(w io.Writer, text string) {
	if r.opts.ShowSummary {
		fmt.Fprintln(w, text)
	}
}

func countDiagnostics(result *runner.Result) int {
	total := 0
	for _, file := range result.Files {
		if file.Result != nil && file.Result.FileResult != nil {
			total += len(file.Result.Diagnostics)
		}
	}
	return total
}

// runDuration renders d to the millisecond, or "" when it was not measured.
func runDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}

// terminalWidth reads the width of writer when it is a terminal.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallbackTermWidth
}
