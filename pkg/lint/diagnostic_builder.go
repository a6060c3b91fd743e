package lint

import (
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
// The rule's ID, name, title and default severity are filled in.
func NewDiagnosticAt(rule *Rule, filePath string, pos validate.Position, message string) *DiagnosticBuilder {
	diag := Diagnostic{
		Message:     message,
		FilePath:    filePath,
		StartLine:   pos.Line,
		StartColumn: pos.Column,
		EndLine:     pos.Line,
		EndColumn:   pos.Column,
		Offset:      pos.Offset,
	}

	if rule != nil {
		diag.RuleID = rule.ID()
		diag.RuleName = rule.Name()
		diag.Title = rule.Title()
		diag.Severity = rule.DefaultSeverity()
	}

	return &DiagnosticBuilder{diag: diag}
}

// FromValidation starts building a diagnostic from a validator finding.
func FromValidation(rule *Rule, filePath string, found validate.Diagnostic) *DiagnosticBuilder {
	b := NewDiagnosticAt(rule, filePath, found.Pos, found.Message).
		WithEnd(found.End).
		WithExcerpt(found.Excerpt)
	if found.Title != "" {
		b.diag.Title = found.Title
	}
	return b
}

// WithEnd sets the end position. Invalid positions are ignored.
func (b *DiagnosticBuilder) WithEnd(pos validate.Position) *DiagnosticBuilder {
	if pos.IsValid() {
		b.diag.EndLine = pos.Line
		b.diag.EndColumn = pos.Column
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithExcerpt sets the source excerpt.
func (b *DiagnosticBuilder) WithExcerpt(excerpt string) *DiagnosticBuilder {
	b.diag.Excerpt = excerpt
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
