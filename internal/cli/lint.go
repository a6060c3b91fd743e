package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlcheck/internal/configloader"
	"github.com/yaklabco/htmlcheck/internal/logging"
	"github.com/yaklabco/htmlcheck/internal/ui/pretty"
	"github.com/yaklabco/htmlcheck/pkg/analysis"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/langdetect"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	goldmarkparser "github.com/yaklabco/htmlcheck/pkg/parser/goldmark"
	"github.com/yaklabco/htmlcheck/pkg/reporter"
	"github.com/yaklabco/htmlcheck/pkg/runner"
)

type lintFlags struct {
	format          string
	flavor          string
	ruleFormat      string
	summaryOrder    string
	sortBy          string
	stdinKind       string
	reportDir       string
	sourceURL       string
	jobs            int
	ignore          []string
	extensions      []string
	enable          []string
	disable         []string
	noMarkdown      bool
	noBackup        bool
	includeVendored bool
	followSymlinks  bool
	quiet           bool
	noContext       bool
	compact         bool
	perFile         bool
	showUnknown     bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:     "lint [paths...]",
		Aliases: []string{"check"},
		Short:   "Check HTML documents",
		Long:    lintLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check HTML documents for lexical defects and unbalanced nesting.

By default, checks every .html, .htm, .xhtml, .md and .markdown file in the
current directory and its subdirectories. Only the HTML embedded in Markdown
files is checked. Use "-" to read a document from standard input.

Examples:
  htmlcheck lint                         # Check the current directory
  htmlcheck lint site/                   # Check a directory
  htmlcheck lint index.html              # Check a single file
  cat page.html | htmlcheck lint -       # Check standard input
  htmlcheck lint --format sarif          # SARIF output for code scanning
  htmlcheck lint --report-dir reports/   # Write an HTML report per failing file`

// cliConfig turns the flags that were set on the command line into a config
// layer. Unset flags stay zero so they do not override config files.
func cliConfig(cmd *cobra.Command, flags *lintFlags) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{}

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("flavor") {
		cfg.Markdown.Flavor = config.Flavor(flags.flavor)
	}
	if changed("no-markdown") {
		enabled := !flags.noMarkdown
		cfg.Markdown.Enabled = &enabled
	}
	if changed("report-dir") {
		cfg.Report.Dir = flags.reportDir
	}
	if changed("source-url") {
		cfg.Report.SourceURL = flags.sourceURL
	}
	if changed("no-backup") {
		backup := !flags.noBackup
		cfg.Report.Backup = &backup
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}
	if changed("stdin-kind") {
		cfg.StdinKind = flags.stdinKind
	}

	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := commandContext(cmd)
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldMarkdown, cfg.Markdown.IsEnabled(),
		logging.FieldReportDir, cfg.Report.Dir,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = pretty.ColorAuto
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if !cfg.RuleFormat.IsValid() {
		return fmt.Errorf("%w: invalid rule format %q", ErrUsage, cfg.RuleFormat)
	}

	summaryOrder := config.SummaryOrder(flags.summaryOrder)
	if !summaryOrder.IsValid() {
		return fmt.Errorf("%w: invalid summary order %q", ErrUsage, flags.summaryOrder)
	}

	if _, ok := langdetect.ParseKind(cfg.StdinKind); cfg.StdinKind != "" && !ok {
		return fmt.Errorf("%w: invalid stdin kind %q (want html or markdown)", ErrUsage, cfg.StdinKind)
	}

	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	output := cmd.OutOrStdout()
	if flags.quiet {
		output = io.Discard
	}

	reportOpts := reporter.Options{
		Writer:       output,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowUnknown:  flags.showUnknown,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: summaryOrder,
		SortBy:       sortBy,
		WorkingDir:   workDir,
		SourceURL:    cfg.Report.SourceURL,
		Version:      info.Version,
		Registry:     lint.DefaultRegistry,
	}

	engine := lint.NewEngine(goldmarkparser.New(string(cfg.Markdown.Flavor)), lint.DefaultRegistry)
	pipeline := lint.NewPipeline(engine)

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		IncludeVendored: flags.includeVendored,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		Config:          cfg,
		Renderer:        reporter.NewHTMLRenderer(reportOpts),
	}
	if runOpts.ReadsStdin() {
		pipeline.Stdin = cmd.InOrStdin()
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldReportsWritten, result.Stats.ReportsWritten,
		logging.FieldDuration, result.Stats.Duration,
	)

	rep, err := reporter.New(reportOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("%w: %d of %d files could not be processed",
			ErrIO, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	if result.HasFailures() {
		return ErrIssuesFound
	}
	return nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText),
		"output format: text, table, json, sarif, summary, html")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.reportDir, "report-dir", "", "write an HTML report for each failing file to this directory")
	cmd.Flags().StringVar(&flags.sourceURL, "source-url", "", "source URL recorded in HTML reports")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "replace existing reports without keeping a backup")
	cmd.Flags().BoolVar(&flags.noMarkdown, "no-markdown", false, "skip Markdown files")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to check in directories")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also check node_modules, vendor and similar directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print nothing; report through the exit code only")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.showUnknown, "show-unknown", false, "list tags outside the element vocabulary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatCombined),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", string(config.SummaryOrderRules),
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVar(&flags.stdinKind, "stdin-kind", "",
		"document kind of standard input: html or markdown (default: detect)")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"row order in summary output: count, alpha, severity")
}
