package lint

import (
	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule.
	Rule *Rule

	// Enabled indicates whether diagnostics from the rule are reported.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity
}

// ResolveRules determines which rules report based on registry and config.
// Returns only enabled rules with their resolved configuration. Disabling a
// rule hides its diagnostics; validation still stops at the first defect.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveByCode indexes the enabled rules by diagnostic code.
func resolveByCode(registry *Registry, cfg *config.Config) map[validate.Code]ResolvedRule {
	resolved := ResolveRules(registry, cfg)
	index := make(map[validate.Code]ResolvedRule, len(resolved))
	for _, rr := range resolved {
		index[rr.Rule.Code()] = rr
	}
	return index
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(registry *Registry, rule *Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	// Rule-specific config; keys may be IDs, names or aliases.
	for key, ruleCfg := range cfg.Rules {
		if !matches(registry, key, rule) {
			continue
		}
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// Explicit enable/disable from the CLI wins over files.
	for _, key := range cfg.EnableRules {
		if matches(registry, key, rule) {
			rr.Enabled = true
			break
		}
	}
	for _, key := range cfg.DisableRules {
		if matches(registry, key, rule) {
			rr.Enabled = false
			break
		}
	}

	return rr
}

func matches(registry *Registry, key string, rule *Rule) bool {
	if key == rule.ID() {
		return true
	}
	id, _, found := registry.Resolve(key)
	return found && id == rule.ID()
}
