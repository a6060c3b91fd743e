package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlcheck/internal/logging"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/fsutil"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	toml   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a htmlcheck configuration file",
		Long: `Create a commented .htmlcheck.yml configuration file in the current
directory. Every rule is listed with its default severity so it can be tuned
or disabled.

Examples:
  htmlcheck init                     Create .htmlcheck.yml
  htmlcheck init --toml              Create .htmlcheck.toml instead
  htmlcheck init --output ci.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.toml, "toml", false, "write TOML instead of YAML")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default .htmlcheck.yml or .htmlcheck.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	format, defaultPath := config.TemplateYAML, ".htmlcheck.yml"
	if flags.toml {
		format, defaultPath = config.TemplateTOML, ".htmlcheck.toml"
	}
	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultPath
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", outputPath, statErr)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format: format,
		Rules:  templateRules(lint.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Title(),
			Severity:    rule.DefaultSeverity(),
		})
	}
	return infos
}
