package reporter

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
	FormatHTML    Format = "html"
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatHTML}
}

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(formatStr))
	if !format.IsValid() {
		names := make([]string, 0, len(Formats()))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatHTML:
		return true
	default:
		return false
	}
}
