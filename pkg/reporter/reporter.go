// Package reporter writes validation results in the supported output
// formats and renders the per-document HTML failure report.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/htmlcheck/pkg/analysis"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

// Reporter writes the result of a run.
type Reporter interface {
	// Report writes the result and returns the number of diagnostics shown.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents a precomputed analysis. Renderers hold no run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

var _ Reporter = (*analyzedReporter)(nil)

// analyzedReporter runs the analysis once and hands it to a Renderer.
type analyzedReporter struct {
	renderer Renderer
	opts     analysis.Options
}

func newAnalyzedReporter(renderer Renderer, opts Options) *analyzedReporter {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.WorkingDir = opts.WorkingDir
	if opts.SortBy != "" {
		analysisOpts.SortBy = opts.SortBy
	}
	return &analyzedReporter{renderer: renderer, opts: analysisOpts}
}

func (r *analyzedReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, r.opts)
	if err := r.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// New returns the Reporter for opts.Format. An empty format means text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newAnalyzedReporter(NewSummaryRenderer(opts), opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
