package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldKind       = "kind"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldReason     = "reason"
	FieldStatus     = "status"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFormat    = "format"
	FieldJobs      = "jobs"
	FieldReportDir = "report_dir"
	FieldMarkdown  = "markdown"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesFailed      = "files_failed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldUnknownTags      = "unknown_tags"
	FieldReportsWritten   = "reports_written"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Diagnostic fields.
	FieldCode     = "code"
	FieldName     = "name"
	FieldSeverity = "severity"
	FieldReport   = "report"
)
