package reporter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlcheck/pkg/analysis"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/reporter"
)

func renderSummary(t *testing.T, opts reporter.Options) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = workDir

	analysisOpts := analysis.DefaultOptions()
	analysisOpts.WorkingDir = workDir
	report := analysis.Analyze(sampleResult(), analysisOpts)

	require.NoError(t, reporter.NewSummaryRenderer(opts).Render(context.Background(), report))
	return buf.String()
}

func TestSummaryRenderer_RulesFirst(t *testing.T) {
	t.Parallel()

	out := renderSummary(t, reporter.DefaultOptions())

	rulesIdx := strings.Index(out, "Rules Summary")
	filesIdx := strings.Index(out, "Files Summary")
	require.NotEqual(t, -1, rulesIdx)
	require.NotEqual(t, -1, filesIdx)
	assert.Less(t, rulesIdx, filesIdx)

	assert.Contains(t, out, "HC019/hierarchy-mismatch")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "bad.html")
	assert.Contains(t, out, "Total: 2 issues (1 errors, 1 warnings) in 2 files, 1 failed, 2 unknown tags")
}

func TestSummaryRenderer_FilesFirst(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.SummaryOrder = config.SummaryOrderFiles

	out := renderSummary(t, opts)
	assert.Less(t, strings.Index(out, "Files Summary"), strings.Index(out, "Rules Summary"))
}

func TestSummaryRenderer_RuleFormatName(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	opts.RuleFormat = config.RuleFormatName

	out := renderSummary(t, opts)
	assert.Contains(t, out, "hierarchy-mismatch")
	assert.NotContains(t, out, "HC019/")
}

func TestSummaryRenderer_NoIssues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := reporter.NewSummaryRenderer(reporter.Options{Writer: &buf, Color: "never"})
	require.NoError(t, renderer.Render(context.Background(), &analysis.Report{}))
	assert.Equal(t, "No issues found\n", buf.String())
}

func TestSummaryRenderer_FileErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := reporter.NewSummaryRenderer(reporter.Options{Writer: &buf, Color: "never"})
	report := analysis.Analyze(erroredResult(), analysis.DefaultOptions())

	require.NoError(t, renderer.Render(context.Background(), report))
	assert.Contains(t, buf.String(), "error: file not found")
	assert.NotContains(t, buf.String(), "No issues found")
}

func TestSummaryFacade_ReturnsIssueCount(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
