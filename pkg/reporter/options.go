package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/htmlcheck/pkg/analysis"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Tool metadata written into machine-readable output.
const (
	ToolName           = "htmlcheck"
	ToolInformationURI = "https://github.com/yaklabco/htmlcheck"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line and a caret in text output.
	ShowContext bool

	// ShowUnknown lists the tags outside the element vocabulary.
	ShowUnknown bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups diagnostics by file (default: true for text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// PerFile outputs a separate report for each file (table format only).
	PerFile bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder config.SummaryOrder

	// SortBy orders the rows of the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// SourceURL is shown in HTML output as the origin of the documents.
	SourceURL string

	// Version is the tool version recorded in SARIF and HTML output.
	Version string

	// Registry supplies rule metadata. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      false,
		RuleFormat:   config.RuleFormatCombined,
		SummaryOrder: config.SummaryOrderRules,
		SortBy:       analysis.SortByCount,
		Version:      "dev",
		Registry:     lint.DefaultRegistry,
	}
}

func (o Options) registry() *lint.Registry {
	if o.Registry == nil {
		return lint.DefaultRegistry
	}
	return o.Registry
}

func (o Options) version() string {
	if o.Version == "" {
		return "dev"
	}
	return o.Version
}
