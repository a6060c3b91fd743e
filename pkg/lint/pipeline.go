package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
)

// ReportSuffix is appended to the report file name of each failing document.
const ReportSuffix = ".report.html"

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidateFailure indicates the document could not be validated.
	ErrValidateFailure = errors.New("validate failure")

	// ErrWriteFailure indicates a report could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// ReportRenderer renders the failure report of one document.
type ReportRenderer interface {
	RenderFileReport(w io.Writer, result *PipelineResult, sourceURL string) error
}

// ReportOptions controls failure report writing.
type ReportOptions struct {
	// Dir is the directory reports are written to. Empty disables reports.
	Dir string

	// SourceURL is recorded in each report.
	SourceURL string

	// Backup configures sidecar backups of replaced reports.
	Backup fsutil.BackupConfig

	// Renderer renders the report. Reports are disabled when nil.
	Renderer ReportRenderer
}

// Enabled returns true if reports should be written.
func (o ReportOptions) Enabled() bool {
	return o.Dir != "" && o.Renderer != nil
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Report configures failure reports.
	Report ReportOptions

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Report: ReportOptions{
			Backup: fsutil.DefaultBackupConfig(),
		},
		StrictRaceDetection: true,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config, renderer ReportRenderer) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}

	opts.Report = ReportOptions{
		Dir:       cfg.Report.Dir,
		SourceURL: cfg.Report.SourceURL,
		Backup:    BackupConfigFromConfig(cfg),
		Renderer:  renderer,
	}
	return opts
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Report.BackupEnabled(),
		Mode:    fsutil.BackupModeSidecar,
	}
}

// PipelineResult contains the result of processing a single document.
type PipelineResult struct {
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Content is the document as read.
	Content []byte

	// OriginalInfo is the file state when it was read.
	OriginalInfo *fsutil.FileInfo

	// ReportPath is where the failure report was written.
	ReportPath string

	// ReportWritten is true if a failure report was written.
	ReportWritten bool

	// BackupCreated is true if a previous report was backed up.
	BackupCreated bool

	// ReportSkipReason explains why a due report was not written.
	ReportSkipReason string
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.FileResult == nil:
		return "ok"
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.ReportWritten && pr.BackupCreated:
		return "issues found (report written, previous report kept)"
	case pr.ReportWritten:
		return "issues found (report written)"
	case pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// Pipeline reads documents, validates them and writes failure reports.
type Pipeline struct {
	// Engine validates documents.
	Engine *Engine

	// Stdin is read for the fsutil.StdinPath path.
	Stdin io.Reader
}

// NewPipeline creates a new pipeline with the given engine, reading
// standard input from os.Stdin.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine, Stdin: os.Stdin}
}

// ProcessFile runs the full pipeline for a single document.
//
// The pipeline performs the following steps:
//  1. Read and hash the document (fsutil.StdinPath reads Stdin).
//  2. Validate it with the engine.
//  3. For failing documents with reports enabled, check the source did not
//     change while it was validated, back up any previous report and write
//     the new one atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := p.read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if err := p.writeReport(ctx, result, opts); err != nil {
		return nil, err
	}

	return result, nil
}

// ProcessContent validates in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*PipelineResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("processing cancelled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrValidateFailure, path, err)
	}

	return &PipelineResult{
		FileResult: fileResult,
		Path:       path,
		Content:    content,
	}, nil
}

func (p *Pipeline) read(ctx context.Context, path string) ([]byte, *fsutil.FileInfo, error) {
	if path == fsutil.StdinPath {
		stdin := p.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return fsutil.ReadStream(ctx, stdin)
	}
	return fsutil.ReadFile(ctx, path)
}

func (p *Pipeline) writeReport(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	if !opts.Report.Enabled() || !result.Failed() {
		return nil
	}

	if result.OriginalInfo != nil {
		modified, err := fsutil.CheckModified(ctx, result.OriginalInfo, opts.StrictRaceDetection)
		if err != nil {
			return fmt.Errorf("check modified: %w", err)
		}
		if modified {
			result.ReportSkipReason = "file modified during processing"
			return nil
		}
	}

	var buf bytes.Buffer
	if err := opts.Report.Renderer.RenderFileReport(&buf, result, opts.Report.SourceURL); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	reportPath := ReportPath(opts.Report.Dir, result.Path)

	created, err := fsutil.RotateBackup(ctx, reportPath, opts.Report.Backup)
	if err != nil {
		return fmt.Errorf("%w: backup report: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, reportPath, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.ReportPath = reportPath
	result.ReportWritten = true

	return nil
}

// ReportPath returns where the failure report for source is written inside
// dir. The cleaned source path is percent-encoded into a single file name:
// '%' becomes %25, '/' becomes %2F and ':' becomes %3A. Distinct sources
// therefore never share a report, and ".." segments cannot leave dir.
func ReportPath(dir, source string) string {
	name := stdinReportName
	if source != fsutil.StdinPath {
		name = reportNameEscaper.Replace(filepath.ToSlash(filepath.Clean(source)))
		if name == stdinReportName {
			name = "%73" + name[1:]
		}
	}
	return filepath.Join(dir, name+ReportSuffix)
}

const stdinReportName = "stdin"

//nolint:gochecknoglobals // Immutable replacer.
var reportNameEscaper = strings.NewReplacer("%", "%25", "/", "%2F", ":", "%3A")

// categorizeError wraps an error with the appropriate pipeline error type.
// It uses errors.Is for robust error detection rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrValidateFailure) ||
		errors.Is(err, ErrWriteFailure)
}
