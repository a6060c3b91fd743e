package runner_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/parser/goldmark"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

type countingRenderer struct {
	mu    sync.Mutex
	paths []string
}

func (r *countingRenderer) RenderFileReport(w io.Writer, result *lint.PipelineResult, _ string) error {
	r.mu.Lock()
	r.paths = append(r.paths, result.Path)
	r.mu.Unlock()
	_, err := fmt.Fprintf(w, "<p>%d issues</p>\n", result.IssueCount())
	return err
}

func newRunner() *runner.Runner {
	engine := lint.NewEngine(goldmark.New(goldmark.FlavorGFM), lint.DefaultRegistry)
	return runner.New(lint.NewPipeline(engine))
}

// writeDocs writes name/content pairs under a fresh directory.
func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func mixedDocs() map[string]string {
	return map[string]string{
		"ok.html":       "<!DOCTYPE html>\n<html><body><p>fine</p></body></html>\n",
		"bad.html":      "<div><span></div>\n",
		"widget.html":   "<my-widget></my-widget>\n",
		"empty.html":    "  \n",
		"docs/note.md":  "# Note\n\n<div><span></div>\n",
		"docs/plain.md": "# Plain\n\nNo markup here.\n",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(nil, lint.DefaultRegistry))
	r := runner.New(pipeline)
	require.NotNil(t, r)
	assert.Same(t, pipeline, r.Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, map[string]string{"notes.txt": "hello"})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Stats(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, mixedDocs())

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 6, stats.FilesDiscovered)
	assert.Equal(t, 6, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesSkipped)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, 3, stats.FilesFailed)
	assert.Equal(t, 3, stats.FilesWithIssues)
	assert.Equal(t, 3, stats.DiagnosticsTotal)
	assert.Equal(t, 3, stats.DiagnosticsBySeverity["error"])
	assert.Zero(t, stats.DiagnosticsBySeverity["warning"])
	assert.Equal(t, 2, stats.DiagnosticsByRule["HC019"])
	assert.Equal(t, 1, stats.DiagnosticsByRule["HC021"])
	assert.Equal(t, 2, stats.UnknownTags)
	assert.Equal(t, 0, stats.ReportsWritten)
	assert.Positive(t, stats.Duration)

	assert.True(t, result.HasFailures())
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasErrors())

	// Outcomes keep discovery order.
	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	assert.IsNonDecreasing(t, paths)
}

func TestRunner_Run_WritesReports(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, mixedDocs())
	reports := filepath.Join(t.TempDir(), "reports")

	cfg := config.NewConfig()
	cfg.Report.Dir = reports
	renderer := &countingRenderer{}

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
		Renderer:   renderer,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.ReportsWritten)
	assert.Len(t, renderer.paths, 3)

	for _, outcome := range result.Files {
		if !outcome.Failed() {
			assert.False(t, outcome.Result.ReportWritten, outcome.Path)
			continue
		}
		require.True(t, outcome.Result.ReportWritten, outcome.Path)
		assert.True(t, strings.HasPrefix(outcome.Result.ReportPath, reports))
		assert.FileExists(t, outcome.Result.ReportPath)
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	docs := mixedDocs()
	for i := range 20 {
		docs[fmt.Sprintf("gen/page%02d.html", i)] = fmt.Sprintf("<ul><li>%d</li></ul>\n", i)
	}
	dir := writeDocs(t, docs)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Diagnostics, parallel.Files[i].Result.Diagnostics)
	}

	serial.Stats.Duration, parallel.Stats.Duration = 0, 0
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	r := newRunner()
	r.Pipeline.Stdin = strings.NewReader("<p><b>bold</p>\n")

	result, err := r.Run(context.Background(), runner.Options{
		Paths:      []string{fsutil.StdinPath},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.Equal(t, fsutil.StdinPath, outcome.Path)
	require.NoError(t, outcome.Error)
	require.Len(t, outcome.Result.Diagnostics, 1)
	assert.Equal(t, "HC019", outcome.Result.Diagnostics[0].RuleID)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeDocs(t, mixedDocs())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasErrors())
}

func TestFileOutcome_Failed(t *testing.T) {
	t.Parallel()

	assert.True(t, runner.FileOutcome{Error: os.ErrNotExist}.Failed())
	assert.False(t, runner.FileOutcome{}.Failed())
}

func TestOptions_ReadsStdin(t *testing.T) {
	t.Parallel()

	assert.False(t, runner.Options{}.ReadsStdin())
	assert.False(t, runner.Options{Paths: []string{"docs", "index.html"}}.ReadsStdin())
	assert.True(t, runner.Options{Paths: []string{"docs", fsutil.StdinPath}}.ReadsStdin())
}
