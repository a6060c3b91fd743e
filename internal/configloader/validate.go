package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/runner"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.HC019.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: %s", cfg.Format, formatList())
	}

	if cfg.Markdown.Flavor != "" && !IsValidFlavor(cfg.Markdown.Flavor) {
		result.addError("markdown.flavor", cfg.Markdown.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Markdown.Flavor)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must start with '.'", ext)
		}
	}

	validateElements(cfg, result)
	validateRules(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateElements checks that extra element names can appear in a tag.
func validateElements(cfg *config.Config, result *ValidationResult) {
	check := func(field string, names []string) {
		for i, name := range names {
			if !validate.IsTagName(name) {
				result.addError(fmt.Sprintf("%s[%d]", field, i), name, "invalid element name %q", name)
			}
		}
	}
	check("elements.paired", cfg.Elements.Paired)
	check("elements.void", cfg.Elements.Void)
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := lint.DefaultRegistry

	for key, ruleCfg := range cfg.Rules {
		if _, _, found := registry.Resolve(key); !found {
			result.addWarning("rules."+key, key, "unknown rule %q; it will be ignored", key)
		}

		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			result.addError("rules."+key+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}
	}

	for _, list := range []struct {
		field string
		keys  []string
	}{{"enable", cfg.EnableRules}, {"disable", cfg.DisableRules}} {
		for _, key := range list.keys {
			if _, _, found := registry.Resolve(key); !found {
				result.addError(list.field, key, "unknown rule %q (known: %s)",
					key, strings.Join(registry.IDs(), ", "))
			}
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if err := runner.CompileGlob(pattern); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	for _, known := range config.OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

func formatList() string {
	names := make([]string, 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
