package runner

import (
	"time"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Failed reports whether the file errored or has error-severity diagnostics.
func (o FileOutcome) Failed() bool {
	if o.Error != nil {
		return true
	}
	return o.Result != nil && o.Result.FileResult != nil && o.Result.Failed()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files read and checked.
	FilesProcessed int

	// FilesSkipped is the number of files that were not validated.
	FilesSkipped int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesFailed is the number of files with error-severity diagnostics.
	FilesFailed int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByRule maps rule IDs to counts.
	DiagnosticsByRule map[string]int

	// UnknownTags is the number of tags outside the element vocabulary.
	UnknownTags int

	// ReportsWritten is the number of failure reports written.
	ReportsWritten int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file failed validation or errored.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByRule:     make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		r.Stats.FilesFailed++
		return
	}

	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return
	}

	r.Stats.FilesProcessed++

	fr := outcome.Result.FileResult
	if fr.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.ReportWritten {
		r.Stats.ReportsWritten++
	}
	if fr.Failed() {
		r.Stats.FilesFailed++
	}

	r.Stats.UnknownTags += len(fr.Unknown())

	diagCount := len(fr.Diagnostics)
	r.Stats.DiagnosticsTotal += diagCount
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range fr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
		r.Stats.DiagnosticsByRule[diag.RuleID]++
	}
}
