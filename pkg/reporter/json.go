package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

// JSONVersion is the version of the JSON output layout.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Kind        string           `json:"kind,omitempty"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Unknown     []JSONUnknownTag `json:"unknown,omitempty"`
	Failed      bool             `json:"failed"`
	Skipped     bool             `json:"skipped,omitempty"`
	SkipReason  string           `json:"skipReason,omitempty"`
	ReportPath  string           `json:"reportPath,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
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

// JSONUnknownTag is a tag outside the element vocabulary.
type JSONUnknownTag struct {
	Name    string `json:"name"`
	Opening bool   `json:"opening"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesFailed     int            `json:"filesFailed"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	ReportsWritten  int            `json:"reportsWritten"`
	TotalIssues     int            `json:"totalIssues"`
	UnknownTags     int            `json:"unknownTags"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByRule          map[string]int `json:"byRule"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByRule:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	summary := &output.Summary

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Diagnostics: make([]JSONDiagnostic, 0),
			Failed:      file.Failed(),
		}
		summary.FilesChecked++
		if fileResult.Failed {
			summary.FilesFailed++
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			summary.FilesErrored++
		}

		if file.Result != nil && file.Result.FileResult != nil {
			fr := file.Result
			fileResult.Kind = fr.Kind.String()
			fileResult.Skipped = fr.Skipped
			fileResult.SkipReason = fr.SkipReason
			if fr.Skipped {
				summary.FilesSkipped++
			}
			if fr.ReportWritten {
				fileResult.ReportPath = fr.ReportPath
				summary.ReportsWritten++
			}

			for _, diag := range fr.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
					RuleID:      diag.RuleID,
					RuleName:    diag.RuleName,
					Title:       diag.Title,
					Severity:    string(diag.Severity),
					Message:     diag.Message,
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
					Offset:      diag.Offset,
					Excerpt:     diag.Excerpt,
				})
				summary.TotalIssues++

				severity := string(diag.Severity)
				if severity == "" {
					severity = string(config.SeverityWarning)
				}
				summary.BySeverity[severity]++
				summary.ByRule[diag.RuleID]++
			}

			for _, tag := range fr.Unknown() {
				fileResult.Unknown = append(fileResult.Unknown, JSONUnknownTag{
					Name:    tag.Name,
					Opening: tag.Opening,
					Line:    tag.Pos.Line,
					Column:  tag.Pos.Column,
				})
				summary.UnknownTags++
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			summary.FilesWithIssues++
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
