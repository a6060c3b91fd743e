// Package configloader resolves the effective configuration from config
// files, HTMLCHECK_* environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/htmlcheck/internal/logging"
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
)

// LoadOptions controls which sources Load reads.
type LoadOptions struct {
	// WorkingDir starts the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values set by flags. Only non-zero fields apply.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	// Paths are the discovered files, loaded or not.
	Paths *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are problems that did not stop loading.
	Warnings []string
}

// Load merges every source over the defaults. Later sources win:
//
//	defaults < system < user < project < --config file < environment < flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	skip := map[string]bool{
		"system":  opts.IgnoreSystemConfig,
		"user":    opts.IgnoreUserConfig,
		"project": opts.IgnoreProjectConfig,
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range paths.layers() {
		if layer.path == "" || skip[layer.name] {
			continue
		}

		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if checked := ValidateWithFile(fileCfg, layer.path); !checked.Valid() {
			return nil, &checked.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.path, logging.FieldKind, layer.name)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	result.Warnings = append(result.Warnings, canonicalizeRuleKeys(cfg, lint.DefaultRegistry)...)

	checked := Validate(cfg)
	if !checked.Valid() {
		return nil, &checked.Errors[0]
	}
	for _, w := range checked.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func readConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if IsTOMLConfig(path) {
		return config.FromTOML(content)
	}
	return config.FromYAML(content)
}

// canonicalizeRuleKeys rewrites rule names to their codes, so that
// "hierarchy-mismatch" and "HC019" configure the same rule. When both
// spellings appear, the exact code spelling wins; otherwise the key that
// sorts last does. Unknown keys are left for Validate to report.
func canonicalizeRuleKeys(cfg *config.Config, registry *lint.Registry) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var warnings []string
	rules := make(map[string]config.RuleConfig, len(cfg.Rules))
	spelledAs := make(map[string]string, len(cfg.Rules))

	for _, key := range keys {
		id, _, found := registry.Resolve(key)
		if !found {
			rules[key] = cfg.Rules[key]
			continue
		}

		if prev, dup := spelledAs[id]; dup {
			winner := key
			if prev == id {
				winner = prev
			}
			warnings = append(warnings, fmt.Sprintf(
				"duplicate rule configuration: %q and %q both refer to %s; using %q",
				prev, key, id, winner))
			if winner == prev {
				continue
			}
		}
		spelledAs[id] = key
		rules[id] = cfg.Rules[key]
	}

	cfg.Rules = rules
	return warnings
}
