package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKeys is returned when a TOML file sets keys Config does not have.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = strings.Repeat(" ", indentWidth)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToTOMLWithHeader(header string) ([]byte, error) {
	return withHeader(header, c.ToTOML)
}

// FromTOML parses a configuration from TOML bytes. Keys that do not map onto
// Config are reported with ErrUnknownKeys.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}

	return cfg.withRules(), nil
}
