package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/config"
)

// envVarPrefix is the prefix for all htmlcheck environment variables.
const envVarPrefix = "HTMLCHECK_"

// EnvVar describes one supported environment variable.
type EnvVar struct {
	// Name is the full variable name, prefix included.
	Name        string
	Description string

	apply func(cfg *config.Config, value string) error
}

// envVars is ordered by name so overrides apply deterministically.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{envVarPrefix + "EXTENSIONS", "Comma-separated list of file extensions to check",
		func(cfg *config.Config, v string) error { cfg.Extensions = splitList(v); return nil }},
	{envVarPrefix + "FLAVOR", "Markdown flavor: commonmark or gfm",
		func(cfg *config.Config, v string) error { cfg.Markdown.Flavor = config.Flavor(v); return nil }},
	{envVarPrefix + "FORMAT", "Output format: text, table, json, sarif, summary, or html",
		func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil }},
	{envVarPrefix + "IGNORE", "Comma-separated list of ignore patterns",
		func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil }},
	{envVarPrefix + "JOBS", "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("want an integer, got %q", v)
			}
			cfg.Jobs = n
			return nil
		}},
	{envVarPrefix + "MARKDOWN", "Check HTML embedded in Markdown: true or false",
		boolSetter(func(cfg *config.Config) **bool { return &cfg.Markdown.Enabled })},
	{envVarPrefix + "REPORT_BACKUP", "Keep the previous report as a .bak file: true or false",
		boolSetter(func(cfg *config.Config) **bool { return &cfg.Report.Backup })},
	{envVarPrefix + "REPORT_DIR", "Directory failure reports are written to",
		func(cfg *config.Config, v string) error { cfg.Report.Dir = v; return nil }},
	{envVarPrefix + "SEVERITY_DEFAULT", "Default severity: error, warning, or info",
		func(cfg *config.Config, v string) error { cfg.SeverityDefault = v; return nil }},
	{envVarPrefix + "SOURCE_URL", "Source URL recorded in failure reports",
		func(cfg *config.Config, v string) error { cfg.Report.SourceURL = v; return nil }},
}

// LoadFromEnv applies HTMLCHECK_* environment variables to cfg. Empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, env := range envVars {
		value := getenv(env.Name)
		if value == "" {
			continue
		}
		if err := env.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", env.Name, err)
		}
	}
	return nil
}

// EnvVars returns the supported environment variables, sorted by name.
func EnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	copy(out, envVars)
	return out
}

// boolSetter parses strconv booleans into the *bool field picked by field.
func boolSetter(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("want true/false/1/0, got %q", v)
		}
		*field(cfg) = &b
		return nil
	}
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
