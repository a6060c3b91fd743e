// Package lint turns validation results into per-file diagnostics. It holds
// the rule catalogue and registry, the engine that validates one document,
// and the pipeline that reads files and writes failure reports.
package lint

import (
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// Diagnostic represents a single issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string `json:"ruleId"`

	// RuleName is the human-readable name of the rule (e.g., "hierarchy-mismatch").
	RuleName string `json:"ruleName"`

	// Title is the short summary of the defect class.
	Title string `json:"title"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity"`

	// FilePath is the path to the file containing the issue.
	FilePath string `json:"filePath"`

	// StartLine is the 1-based line number where the issue starts.
	StartLine int `json:"startLine"`

	// StartColumn is the 1-based column, counted in characters, where the issue starts.
	StartColumn int `json:"startColumn"`

	// EndLine is the 1-based line number where the issue was detected.
	EndLine int `json:"endLine"`

	// EndColumn is the 1-based column where the issue was detected.
	EndColumn int `json:"endColumn"`

	// Offset is the 0-based byte offset of the start position.
	Offset int `json:"offset"`

	// Excerpt is the source text the issue refers to.
	Excerpt string `json:"excerpt,omitempty"`
}

// HasExcerpt returns true if the diagnostic carries source text.
func (d *Diagnostic) HasExcerpt() bool {
	return d.Excerpt != ""
}

// Rule describes one class of defect the validator reports.
type Rule struct {
	code     validate.Code
	severity config.Severity
	tags     []string
}

// NewRule creates a Rule for a diagnostic code.
func NewRule(code validate.Code, severity config.Severity, tags ...string) *Rule {
	return &Rule{code: code, severity: severity, tags: tags}
}

// Code returns the diagnostic code the rule reports.
func (r *Rule) Code() validate.Code {
	return r.code
}

// ID returns the unique identifier for this rule (e.g., "HC019").
func (r *Rule) ID() string {
	return r.code.ID()
}

// Name returns the human-readable name of the rule.
func (r *Rule) Name() string {
	return r.code.String()
}

// Title returns the short summary of the rule.
func (r *Rule) Title() string {
	return r.code.Title()
}

// Description returns a detailed description of what the rule checks.
func (r *Rule) Description() string {
	return r.code.Description()
}

// DefaultEnabled returns whether the rule is enabled by default.
func (r *Rule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
func (r *Rule) DefaultSeverity() config.Severity {
	return r.severity
}

// Tags returns categorization tags for this rule (e.g., ["lexical", "attribute"]).
func (r *Rule) Tags() []string {
	return r.tags
}

// Advisory returns true for rules whose findings do not make a document fail.
func (r *Rule) Advisory() bool {
	return r.code.IsAdvisory()
}
