package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string

	// Rules documents each rule in the template. When empty the rules
	// section is left as a commented example.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	switch opts.Format {
	case "", TemplateYAML:
		return yamlTemplate(rules), nil
	case TemplateTOML:
		return tomlTemplate(rules), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func yamlTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
# severity_default: error

# Extra elements, for custom elements or vocabularies beyond HTML
# elements:
#   paired: [my-widget]
#   void: [my-marker]

# Check HTML embedded in Markdown files
markdown:
  enabled: true
  flavor: gfm

# Write an HTML failure report per failing file
# report:
#   dir: htmlcheck-reports
#   source_url: https://example.com/
#   backup: true

# File extensions to check
extensions: [.html, .htm, .xhtml, .md, .markdown]

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - ".git/**"

# Rule-specific configuration
`)

	if len(rules) == 0 {
		buf.WriteString("# rules:\n#   HC021:\n#     severity: info\n")
		return buf.Bytes()
	}

	buf.WriteString("rules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

func tomlTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
# severity_default = "error"

# File extensions to check
extensions = [".html", ".htm", ".xhtml", ".md", ".markdown"]

# File patterns to ignore (glob patterns)
ignore = ["node_modules/**", ".git/**"]

# Extra elements, for custom elements or vocabularies beyond HTML
[elements]
# paired = ["my-widget"]
# void = ["my-marker"]

# Check HTML embedded in Markdown files
[markdown]
enabled = true
flavor = "gfm"

# Write an HTML failure report per failing file
[report]
# dir = "htmlcheck-reports"
# source_url = "https://example.com/"
# backup = true
`)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		buf.WriteString("enabled = true\n")
		fmt.Fprintf(&buf, "severity = %q\n", rule.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters, starting
// continuation lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# htmlcheck configuration
# See: https://github.com/yaklabco/htmlcheck`
}
