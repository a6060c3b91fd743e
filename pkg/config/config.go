// Package config defines core configuration types for htmlcheck.
// These types are pure data structures with no dependency on how
// configuration files are discovered or merged.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool   `mapstructure:"enabled" toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Severity *string `mapstructure:"severity" toml:"severity,omitempty" yaml:"severity,omitempty"`
}

// ElementsConfig extends the built-in element vocabulary.
type ElementsConfig struct {
	// Paired lists extra elements that need a closing tag.
	Paired []string `mapstructure:"paired" toml:"paired,omitempty" yaml:"paired,omitempty"`

	// Void lists extra elements that never have content.
	Void []string `mapstructure:"void" toml:"void,omitempty" yaml:"void,omitempty"`
}

// IsEmpty reports whether no extra elements are configured.
func (e ElementsConfig) IsEmpty() bool {
	return len(e.Paired) == 0 && len(e.Void) == 0
}

// MarkdownConfig controls checking of HTML embedded in Markdown files.
type MarkdownConfig struct {
	// Enabled turns Markdown checking on. Nil means enabled.
	Enabled *bool `mapstructure:"enabled" toml:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Flavor is the Markdown flavor used to find embedded HTML.
	Flavor Flavor `mapstructure:"flavor" toml:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// IsEnabled reports whether Markdown files are checked.
func (m MarkdownConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// ReportConfig controls the HTML failure reports written for failing files.
type ReportConfig struct {
	// Dir is the directory reports are written to. Empty disables reports.
	Dir string `mapstructure:"dir" toml:"dir,omitempty" yaml:"dir,omitempty"`

	// SourceURL is recorded in each report as the origin of the document.
	SourceURL string `mapstructure:"source_url" toml:"source_url,omitempty" yaml:"source_url,omitempty"`

	// Backup keeps the previous report as a sidecar file. Nil means enabled.
	Backup *bool `mapstructure:"backup" toml:"backup,omitempty" yaml:"backup,omitempty"`
}

// IsEnabled reports whether failure reports are written.
func (r ReportConfig) IsEnabled() bool {
	return r.Dir != ""
}

// BackupEnabled reports whether an existing report is backed up before it
// is replaced.
func (r ReportConfig) BackupEnabled() bool {
	return r.Backup == nil || *r.Backup
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
	FormatHTML    OutputFormat = "html"
)

// OutputFormats returns every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatHTML}
}

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultExtensions are the file extensions discovery considers.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml", ".md", ".markdown"}
}

// Config is the root configuration structure for htmlcheck.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	// Empty keeps each rule's own default.
	SeverityDefault string `mapstructure:"severity_default" toml:"severity_default,omitempty" yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID or name.
	Rules map[string]RuleConfig `mapstructure:"rules" toml:"rules,omitempty" yaml:"rules,omitempty"`

	// Elements extends the element vocabulary.
	Elements ElementsConfig `mapstructure:"elements" toml:"elements" yaml:"elements,omitempty"`

	// Markdown controls checking of Markdown files.
	Markdown MarkdownConfig `mapstructure:"markdown" toml:"markdown" yaml:"markdown,omitempty"`

	// Report controls HTML failure reports.
	Report ReportConfig `mapstructure:"report" toml:"report" yaml:"report,omitempty"`

	// Extensions restricts discovery to these file extensions.
	Extensions []string `mapstructure:"extensions" toml:"extensions,omitempty" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" toml:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" toml:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" toml:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" toml:"-" yaml:"-"`

	// StdinKind forces the document kind of standard input ("html" or
	// "markdown") instead of sniffing its content.
	StdinKind string `mapstructure:"-" toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Markdown: MarkdownConfig{
			Flavor: FlavorGFM,
		},
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		RuleFormat: RuleFormatCombined,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
