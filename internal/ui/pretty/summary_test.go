package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        10,
		FilesSkipped:          1,
		FilesWithIssues:       3,
		FilesFailed:           2,
		DiagnosticsTotal:      4,
		DiagnosticsBySeverity: map[string]int{"error": 2, "warning": 2},
		UnknownTags:           6,
		ReportsWritten:        2,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     10")
	assert.Contains(t, result, "Files skipped:     1")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Reports written:   2")
	assert.Contains(t, result, "Total issues:      4")
	assert.Contains(t, result, "Errors:          2")
	assert.Contains(t, result, "Warnings:        2")
	assert.Contains(t, result, "Unknown tags:      6")
	assert.Contains(t, result, "Validation failed")
}

func TestFormatSummary_NoIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[string]int{}})

	assert.Contains(t, result, "Validation passed")
	assert.NotContains(t, result, "Files with issues:")
	assert.NotContains(t, result, "Unknown tags:")
}

func TestFormatSummary_WarningsOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed:        2,
		FilesWithIssues:       1,
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	}

	assert.Contains(t, styles.FormatSummary(stats), "Validation passed with warnings")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "No issues found (4 files checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "issues",
			stats: runner.Stats{
				FilesProcessed:        3,
				FilesWithIssues:       2,
				DiagnosticsTotal:      3,
				DiagnosticsBySeverity: map[string]int{"error": 2, "warning": 1},
				ReportsWritten:        2,
			},
			want: "3 issues (2 errors, 1 warnings) in 2 files, 2 reports written\n",
		},
		{
			name: "single issue with unreadable file",
			stats: runner.Stats{
				FilesWithIssues:       1,
				FilesErrored:          1,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"error": 1},
			},
			want: "1 issue (1 errors) in 1 file, 1 file unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
