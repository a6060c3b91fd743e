package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	rule, _ := lint.DefaultRegistry.GetByCode(validate.CodeEmptyTagName)
	pos := validate.Position{Line: 3, Column: 5, Offset: 20}

	diag := lint.NewDiagnosticAt(rule, "page.html", pos, "empty").Build()

	assert.Equal(t, "HC003", diag.RuleID)
	assert.Equal(t, "empty-tag-name", diag.RuleName)
	assert.Equal(t, rule.Title(), diag.Title)
	assert.Equal(t, config.SeverityError, diag.Severity)
	assert.Equal(t, "page.html", diag.FilePath)
	assert.Equal(t, 3, diag.StartLine)
	assert.Equal(t, 5, diag.StartColumn)
	assert.Equal(t, 3, diag.EndLine)
	assert.Equal(t, 5, diag.EndColumn)
	assert.Equal(t, 20, diag.Offset)
	assert.False(t, diag.HasExcerpt())
}

func TestNewDiagnosticAt_NilRule(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnosticAt(nil, "", validate.Position{Line: 1, Column: 1}, "msg").Build()
	assert.Empty(t, diag.RuleID)
	assert.Equal(t, "msg", diag.Message)
}

func TestFromValidation(t *testing.T) {
	t.Parallel()

	rule, _ := lint.DefaultRegistry.GetByCode(validate.CodeHierarchyMismatch)
	found := validate.Diagnostic{
		Code:    validate.CodeHierarchyMismatch,
		Pos:     validate.Position{Line: 2, Column: 1, Offset: 10},
		End:     validate.Position{Line: 2, Column: 7, Offset: 16},
		Title:   "Hierarchy mismatch",
		Message: "expected </b>",
		Excerpt: "<b></i>",
	}

	diag := lint.FromValidation(rule, "a.html", found).WithSeverity(config.SeverityWarning).Build()

	assert.Equal(t, "HC019", diag.RuleID)
	assert.Equal(t, "Hierarchy mismatch", diag.Title)
	assert.Equal(t, "expected </b>", diag.Message)
	assert.Equal(t, 7, diag.EndColumn)
	assert.Equal(t, "<b></i>", diag.Excerpt)
	assert.Equal(t, config.SeverityWarning, diag.Severity)
}

func TestWithEnd_IgnoresInvalid(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnosticAt(nil, "", validate.Position{Line: 4, Column: 2}, "").
		WithEnd(validate.Position{}).
		Build()
	assert.Equal(t, 4, diag.EndLine)
	assert.Equal(t, 2, diag.EndColumn)
}
