package configloader

import (
	"github.com/yaklabco/htmlcheck/pkg/config"
)

// merge layers override on top of base and returns a new Config. Zero
// scalars, nil pointers and nil slices in override leave base untouched,
// so a layer only changes what it sets. Rule settings merge per field.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base

	setIfNonZero(&out.SeverityDefault, override.SeverityDefault)
	setIfNonZero(&out.Format, override.Format)
	setIfNonZero(&out.RuleFormat, override.RuleFormat)
	setIfNonZero(&out.Jobs, override.Jobs)
	setIfNonZero(&out.StdinKind, override.StdinKind)

	setIfNonZero(&out.Markdown.Enabled, override.Markdown.Enabled)
	setIfNonZero(&out.Markdown.Flavor, override.Markdown.Flavor)

	setIfNonZero(&out.Report.Dir, override.Report.Dir)
	setIfNonZero(&out.Report.SourceURL, override.Report.SourceURL)
	setIfNonZero(&out.Report.Backup, override.Report.Backup)

	setIfNotNil(&out.Elements.Paired, override.Elements.Paired)
	setIfNotNil(&out.Elements.Void, override.Elements.Void)
	setIfNotNil(&out.Extensions, override.Extensions)
	setIfNotNil(&out.Ignore, override.Ignore)
	setIfNotNil(&out.EnableRules, override.EnableRules)
	setIfNotNil(&out.DisableRules, override.DisableRules)

	out.Rules = mergeRules(base.Rules, override.Rules)

	return &out
}

func setIfNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// setIfNotNil replaces a slice only when the layer set it. An empty but
// non-nil slice clears the value.
func setIfNotNil[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := make(map[string]config.RuleConfig, len(base)+len(override))
	for id, rule := range base {
		out[id] = rule
	}
	for id, rule := range override {
		merged := out[id]
		setIfNonZero(&merged.Enabled, rule.Enabled)
		setIfNonZero(&merged.Severity, rule.Severity)
		out[id] = merged
	}
	return out
}

// MergeAll folds configs left to right, later ones winning.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
