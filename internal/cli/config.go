package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlcheck/internal/configloader"
)

type configFlags struct {
	toml bool
	env  bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration htmlcheck would use in the current directory,
after merging the system, user and project files, the --config file and
HTMLCHECK_* environment variables. The files that were read are listed in a
header comment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.toml, "toml", false, "print TOML instead of YAML")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list the supported environment variables instead")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	if flags.env {
		return writeEnvVars(cmd.OutOrStdout())
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	header := sourcesHeader(loaded.LoadedFrom)
	var content []byte
	if flags.toml {
		content, err = loaded.Config.ToTOMLWithHeader(header)
	} else {
		content, err = loaded.Config.ToYAMLWithHeader(header)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func writeEnvVars(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, env := range configloader.EnvVars() {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", env.Name, env.Description); err != nil {
			return fmt.Errorf("write environment variables: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}

// sourcesHeader lists the files merged into the effective configuration.
func sourcesHeader(sources []string) string {
	if len(sources) == 0 {
		return "# Effective configuration (defaults only)"
	}

	var sb strings.Builder
	sb.WriteString("# Effective configuration, merged from:")
	for _, source := range sources {
		sb.WriteString("\n#   ")
		sb.WriteString(source)
	}
	return sb.String()
}
