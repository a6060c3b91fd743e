package analysis

import "time"

// Report contains pre-computed views of validation results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups diagnostics by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Unknown lists the tags outside the element vocabulary, per file.
	Unknown []UnknownEntry `json:"unknown,omitempty"`

	// Errors lists files that could not be processed.
	Errors []FileError `json:"errors,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Title       string `json:"title,omitempty"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	Offset      int    `json:"offset"`
	Excerpt     string `json:"excerpt,omitempty"`
}

// UnknownEntry is one tag outside the element vocabulary.
type UnknownEntry struct {
	FilePath string `json:"filePath"`
	Name     string `json:"name"`
	Opening  bool   `json:"opening"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// FileError is a file that could not be read or validated.
type FileError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesFailed     int `json:"filesFailed"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	UnknownTags     int `json:"unknownTags"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Unknown  int      `json:"unknown"`
	Report   string   `json:"report,omitempty"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Title    string   `json:"title,omitempty"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}
