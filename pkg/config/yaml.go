package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// indentWidth is the nesting indent of generated YAML and TOML.
const indentWidth = 2

// ToYAML serializes the configuration to YAML. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML with a comment block and a blank line in front.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	return withHeader(header, c.ToYAML)
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.withRules(), nil
}

// withRules makes sure Rules is non-nil after decoding.
func (c *Config) withRules() *Config {
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
	return c
}

// Clone returns a deep copy, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Elements.Paired = slices.Clone(c.Elements.Paired)
	out.Elements.Void = slices.Clone(c.Elements.Void)
	out.Markdown.Enabled = clonePtr(c.Markdown.Enabled)
	out.Report.Backup = clonePtr(c.Report.Backup)
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)

	out.Rules = maps.Clone(c.Rules)
	for key, rule := range out.Rules {
		out.Rules[key] = RuleConfig{
			Enabled:  clonePtr(rule.Enabled),
			Severity: clonePtr(rule.Severity),
		}
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// withHeader runs encode and prefixes its output with header, which is
// expected to be comment lines.
func withHeader(header string, encode func() ([]byte, error)) ([]byte, error) {
	body, err := encode()
	if err != nil || header == "" {
		return body, err
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
