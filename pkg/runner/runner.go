package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/htmlcheck/internal/logging"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// Runner orchestrates multi-file validation using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes keep discovery order whatever order the workers finish in.
// A file that cannot be processed is recorded in its FileOutcome and does
// not stop the run; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFiles, len(files))

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config, opts.Renderer)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcomes[i] = r.process(groupCtx, path, opts, pipelineOpts)
			done[i] = true
			return nil
		})
	}

	// Workers never return errors; failures live in the outcomes.
	_ = group.Wait()

	for i := range outcomes {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}
	result.Stats.Duration = time.Since(start)

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// process runs the pipeline for one file.
func (r *Runner) process(
	ctx context.Context,
	path string,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err != nil {
		logger.Debug("file error", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}

	outcome.Result = pr
	logger.Debug("file checked",
		logging.FieldPath, path,
		logging.FieldKind, pr.Kind.String(),
		logging.FieldDiagnosticsTotal, pr.IssueCount(),
		logging.FieldStatus, pr.Summary(),
	)
	if pr.ReportWritten {
		logger.Debug("report written", logging.FieldPath, path, logging.FieldReport, pr.ReportPath)
	}

	return outcome
}
