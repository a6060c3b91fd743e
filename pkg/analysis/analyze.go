package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" || absPath == fsutil.StdinPath {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

// normalizeSeverity returns the severity, defaulting to warning.
func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}

// severityCounts points at the severity tallies of one view.
type severityCounts struct {
	errors, warnings, infos *int
}

func (c severityCounts) add(severity config.Severity) {
	switch severity {
	case config.SeverityError:
		*c.errors++
	case config.SeverityWarning:
		*c.warnings++
	case config.SeverityInfo:
		*c.infos++
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(diag *lint.Diagnostic) *RuleAnalysis {
	if _, ok := ctx.ruleMap[diag.RuleID]; !ok {
		ctx.ruleMap[diag.RuleID] = &RuleAnalysis{
			RuleID:   diag.RuleID,
			RuleName: diag.RuleName,
			Title:    diag.Title,
		}
		ctx.ruleFiles[diag.RuleID] = make(map[string]bool)
	}
	return ctx.ruleMap[diag.RuleID]
}

func newDiagnosticEntry(path string, severity config.Severity, diag *lint.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Title:       diag.Title,
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Offset:      diag.Offset,
		Excerpt:     diag.Excerpt,
	}
}

// buildByRule constructs the ByRule slice from accumulated data.
func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildByFile constructs the ByFile slice from accumulated data.
func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through diagnostics to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	totals := &report.Totals

	for _, file := range result.Files {
		totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			totals.FilesErrored++
			totals.FilesFailed++
			report.Errors = append(report.Errors, FileError{FilePath: displayPath, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fr := file.Result.FileResult
		if fr.Skipped {
			totals.FilesSkipped++
		}
		if fr.Failed() {
			totals.FilesFailed++
		}
		if fr.HasIssues() {
			totals.FilesWithIssues++
		}

		fa := ctx.file(displayPath)
		if file.Result.ReportWritten {
			fa.Report = file.Result.ReportPath
		}

		for _, tag := range fr.Unknown() {
			totals.UnknownTags++
			fa.Unknown++
			if opts.Views.Has(ViewUnknown) {
				report.Unknown = append(report.Unknown, UnknownEntry{
					FilePath: displayPath,
					Name:     tag.Name,
					Opening:  tag.Opening,
					Line:     tag.Pos.Line,
					Column:   tag.Pos.Column,
				})
			}
		}

		for i := range fr.Diagnostics {
			diag := &fr.Diagnostics[i]
			severity := normalizeSeverity(diag.Severity)

			totals.Issues++
			severityCounts{&totals.Errors, &totals.Warnings, &totals.Infos}.add(severity)

			fa.Issues++
			severityCounts{&fa.Errors, &fa.Warnings, &fa.Infos}.add(severity)
			ctx.fileRules[displayPath][diag.RuleID] = true

			ra := ctx.rule(diag)
			ra.Issues++
			severityCounts{&ra.Errors, &ra.Warnings, &ra.Infos}.add(severity)
			ctx.ruleFiles[diag.RuleID][displayPath] = true

			if opts.Views.Has(ViewDiagnostics) {
				report.Diagnostics = append(report.Diagnostics, newDiagnosticEntry(displayPath, severity, diag))
			}
		}
	}

	if opts.Views.Has(ViewByRule) {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.Views.Has(ViewByFile) {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

// compareSeverity orders errors first, then warnings, then issue count.
func compareSeverity(leftErr, rightErr, leftWarn, rightWarn, leftIssues, rightIssues int) int {
	if result := cmp.Compare(rightErr, leftErr); result != 0 {
		return result
	}
	if result := cmp.Compare(rightWarn, leftWarn); result != 0 {
		return result
	}
	return cmp.Compare(rightIssues, leftIssues)
}

func compareCount(left, right int, desc bool) int {
	result := cmp.Compare(left, right)
	if desc {
		result = -result
	}
	return result
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = compareSeverity(left.Errors, right.Errors, left.Warnings, right.Warnings, left.Issues, right.Issues)
		default:
			result = compareCount(left.Issues, right.Issues, desc)
		}
		// Ties fall back to rule ID so output is stable.
		return cmp.Or(result, cmp.Compare(left.RuleID, right.RuleID))
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		var result int
		switch sortBy {
		case SortByAlpha:
		case SortBySeverity:
			result = compareSeverity(left.Errors, right.Errors, left.Warnings, right.Warnings, left.Issues, right.Issues)
		default:
			result = compareCount(left.Issues, right.Issues, desc)
		}
		return cmp.Or(result, cmp.Compare(left.Path, right.Path))
	})
}
