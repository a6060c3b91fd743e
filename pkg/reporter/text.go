package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's diagnostics and returns how many it wrote.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	if len(diagnostics) == 0 {
		return 0
	}

	var lines sourceLines
	if r.opts.ShowContext {
		lines = newSourceLines(file.Result.Content)
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
	}

	for i := range diagnostics {
		diag := diagnostics[i]
		diag.FilePath = path
		fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
			&diag, r.opts.ShowContext, lines.line(diag.StartLine), r.opts.RuleFormat))
	}

	if r.opts.ShowUnknown {
		fmt.Fprint(r.bw, r.styles.FormatUnknownTags(file.Result.Unknown()))
	}
	if file.Result.ReportWritten {
		fmt.Fprintln(r.bw, "    "+r.styles.Dim.Render("Report: "+file.Result.ReportPath))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(diagnostics)
}
