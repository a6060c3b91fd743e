// Package analysis turns runner results into grouped, sorted views that the
// reporters render.
package analysis

import (
	"fmt"
	"strings"
)

// View selects a part of the Report. Totals are always computed.
type View uint8

const (
	ViewDiagnostics View = 1 << iota
	ViewByFile
	ViewByRule
	ViewUnknown

	ViewAll = ViewDiagnostics | ViewByFile | ViewByRule | ViewUnknown
)

// Has reports whether every view in want is selected.
func (v View) Has(want View) bool {
	return v&want == want
}

// SortField orders the ByFile and ByRule views.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by path or rule code.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts entries with errors first, then warnings.
	SortBySeverity SortField = "severity"
)

// SortFields lists the accepted sort fields.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// ParseSortField parses a case-insensitive sort field. Empty means count.
func ParseSortField(raw string) (SortField, error) {
	if raw == "" {
		return SortByCount, nil
	}
	field := SortField(strings.ToLower(strings.TrimSpace(raw)))
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort field %q (want count, alpha, or severity)", raw)
	}
	return field, nil
}

// Options configures Analyze.
type Options struct {
	// Views selects the parts of the report to build.
	Views View

	// SortBy orders ByFile and ByRule. Ties always break on path or code.
	SortBy SortField

	// SortDesc puts the highest counts first. Only SortByCount uses it.
	SortDesc bool

	// WorkingDir makes file paths relative when set.
	WorkingDir string
}

// DefaultOptions builds every view, most frequent entries first.
func DefaultOptions() Options {
	return Options{
		Views:    ViewAll,
		SortBy:   SortByCount,
		SortDesc: true,
	}
}
