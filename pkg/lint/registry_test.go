package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/htmlcheck/pkg/config"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

func TestRegistry_GetByName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(NewRule(validate.CodeHierarchyMismatch, config.SeverityError))

	got, ok := reg.Get("hierarchy-mismatch")
	assert.True(t, ok)
	assert.Equal(t, "HC019", got.ID())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	t.Parallel()

	_, ok := NewRegistry().Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_GetByCode(t *testing.T) {
	t.Parallel()

	rule, ok := DefaultRegistry.GetByCode(validate.CodeUnknownTagAdvisory)
	require.True(t, ok)
	assert.Equal(t, "HC021", rule.ID())
	assert.Equal(t, config.SeverityError, rule.DefaultSeverity())
	assert.True(t, rule.Advisory())
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"HC019", "HC019", true},
		{"hierarchy-mismatch", "HC019", true},
		{"nesting", "HC019", true},
		{"hc019", "HC019", true},
		{" Hierarchy-Mismatch ", "HC019", true},
		{"unknown-elements", "HC021", true},
		{"HC999", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			id, rule, ok := DefaultRegistry.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if ok {
				assert.Equal(t, tt.wantID, rule.ID())
			}
		})
	}
}

func TestDefaultRegistry_CoversEveryCode(t *testing.T) {
	t.Parallel()

	rules := DefaultRegistry.Rules()
	require.Len(t, rules, len(validate.Codes()))

	for i, rule := range rules {
		assert.Equal(t, validate.Codes()[i], rule.Code(), "rules are sorted by ID")
		assert.NotEmpty(t, rule.Tags(), rule.ID())
		assert.NotEmpty(t, rule.Description(), rule.ID())
		assert.True(t, rule.DefaultEnabled())
		if !rule.Advisory() {
			assert.Equal(t, config.SeverityError, rule.DefaultSeverity(), rule.ID())
		}
	}
}

func TestRegistry_IDs_Sorted(t *testing.T) {
	t.Parallel()

	ids := DefaultRegistry.IDs()
	assert.IsNonDecreasing(t, ids)
	assert.Equal(t, "HC001", ids[0])
}

func TestRegistry_AliasDoesNotShadowName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(NewRule(validate.CodeHierarchyMismatch, config.SeverityError))
	reg.Register(NewRule(validate.CodeUnknownTagAdvisory, config.SeverityWarning))

	reg.RegisterAlias("hierarchy-mismatch", "HC021")
	reg.RegisterAlias("advisory", "HC021")
	reg.RegisterAlias("orphan", "HC999")

	id, _, ok := reg.Resolve("hierarchy-mismatch")
	require.True(t, ok)
	assert.Equal(t, "HC019", id)

	id, _, ok = reg.Resolve("advisory")
	require.True(t, ok)
	assert.Equal(t, "HC021", id)

	_, _, ok = reg.Resolve("orphan")
	assert.False(t, ok)

	_, ok = reg.GetByID("hc019")
	assert.False(t, ok, "GetByID is exact")
}
