package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		{name: "clean", totals: Totals{Files: 2}},
		{name: "warnings only", totals: Totals{Issues: 2, Warnings: 2}, wantIssues: true},
		{name: "errors", totals: Totals{Issues: 1, Errors: 1}, wantIssues: true, wantErrors: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestView_Has(t *testing.T) {
	t.Parallel()

	assert.True(t, ViewAll.Has(ViewUnknown))
	assert.True(t, ViewAll.Has(ViewByFile|ViewByRule))
	assert.False(t, ViewByRule.Has(ViewByFile))
	assert.False(t, View(0).Has(ViewDiagnostics))
	assert.Equal(t, ViewAll, DefaultOptions().Views)
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	for _, field := range SortFields() {
		got, err := ParseSortField(string(field))
		require.NoError(t, err)
		assert.Equal(t, field, got)
	}

	got, err := ParseSortField(" Severity ")
	require.NoError(t, err)
	assert.Equal(t, SortBySeverity, got)

	got, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByCount, got)

	_, err = ParseSortField("size")
	require.Error(t, err)
	assert.False(t, SortField("size").IsValid())
}
