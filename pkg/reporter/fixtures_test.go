package reporter_test

import (
	"errors"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/langdetect"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/runner"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

const workDir = "/work"

const badContent = "<div>\n  <span></div>\n"

func mismatchDiagnostic() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      "HC019",
		RuleName:    "hierarchy-mismatch",
		Title:       "Hierarchy mismatch",
		Message:     "closing tag </div> does not match the open element <span>",
		Severity:    config.SeverityError,
		FilePath:    workDir + "/bad.html",
		StartLine:   2,
		StartColumn: 3,
		EndLine:     2,
		EndColumn:   14,
		Offset:      8,
		Excerpt:     "<span></div>\n",
	}
}

func unknownDiagnostic() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      "HC021",
		RuleName:    "unknown-tags",
		Title:       "Unknown tags",
		Message:     "2 tags are outside the element vocabulary",
		Severity:    config.SeverityWarning,
		FilePath:    workDir + "/widget.html",
		StartLine:   1,
		StartColumn: 1,
		EndLine:     1,
		EndColumn:   24,
	}
}

func fileResult(path string, kind langdetect.Kind, content string, diags ...lint.Diagnostic) *lint.PipelineResult {
	return &lint.PipelineResult{
		FileResult: &lint.FileResult{
			Path:        path,
			Kind:        kind,
			Validation:  &validate.Result{OK: len(diags) == 0, Tags: 2},
			Diagnostics: diags,
		},
		Path:    path,
		Content: []byte(content),
	}
}

// sampleResult has one clean, one failing and one warning-only file.
func sampleResult() *runner.Result {
	ok := fileResult(workDir+"/ok.html", langdetect.KindHTML, "<p>fine</p>\n")

	bad := fileResult(workDir+"/bad.html", langdetect.KindHTML, badContent, mismatchDiagnostic())
	bad.ReportWritten = true
	bad.ReportPath = "/reports/bad.html.report.html"

	widget := fileResult(workDir+"/widget.html", langdetect.KindHTML,
		"<my-widget></my-widget>\n", unknownDiagnostic())
	widget.Validation.Unknown = []validate.UnknownTag{
		{Name: "my-widget", Opening: true, Pos: validate.Position{Line: 1, Column: 1}},
		{Name: "my-widget", Opening: false, Pos: validate.Position{Line: 1, Column: 12, Offset: 11}},
	}

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: workDir + "/ok.html", Result: ok},
			{Path: workDir + "/bad.html", Result: bad},
			{Path: workDir + "/widget.html", Result: widget},
		},
		Stats: runner.Stats{
			FilesDiscovered:  3,
			FilesProcessed:   3,
			FilesFailed:      1,
			FilesWithIssues:  2,
			DiagnosticsTotal: 2,
			DiagnosticsBySeverity: map[string]int{
				"error":   1,
				"warning": 1,
			},
			DiagnosticsByRule: map[string]int{"HC019": 1, "HC021": 1},
			UnknownTags:       2,
			ReportsWritten:    1,
		},
	}
}

// erroredResult has a single unreadable file.
func erroredResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: workDir + "/gone.html", Error: errors.New("file not found")},
		},
		Stats: runner.Stats{FilesDiscovered: 1, FilesErrored: 1, FilesFailed: 1},
	}
}
