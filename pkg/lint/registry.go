package lint

import (
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/htmlcheck/pkg/validate"
)

// Registry indexes rules by code, ID, name and alias. Lookups by key are
// case-insensitive, so "hc019" and "Hierarchy-Mismatch" both find HC019.
type Registry struct {
	mu     sync.RWMutex
	byCode map[validate.Code]*Rule
	// keys maps every lower-cased ID, name and alias to a code.
	keys map[string]validate.Code
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[validate.Code]*Rule),
		keys:   make(map[string]validate.Code),
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Register adds rule, replacing any rule with the same code.
func (r *Registry) Register(rule *Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byCode[rule.Code()] = rule
	r.keys[normalizeKey(rule.ID())] = rule.Code()
	r.keys[normalizeKey(rule.Name())] = rule.Code()
}

// RegisterAlias makes alias resolve to the rule with the given ID. IDs and
// names keep priority over aliases.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.keys[normalizeKey(ruleID)]
	if !ok {
		return
	}
	if _, taken := r.keys[normalizeKey(alias)]; !taken {
		r.keys[normalizeKey(alias)] = code
	}
}

// Get finds a rule by ID, name or alias.
func (r *Registry) Get(key string) (*Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// GetByID finds a rule by its exact ID.
func (r *Registry) GetByID(id string) (*Rule, bool) {
	rule, ok := r.Get(id)
	if !ok || rule.ID() != id {
		return nil, false
	}
	return rule, true
}

// GetByCode finds the rule reporting a diagnostic code.
func (r *Registry) GetByCode(code validate.Code) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.byCode[code]
	return rule, ok
}

// Resolve maps an ID, name or alias to the canonical rule ID.
func (r *Registry) Resolve(key string) (string, *Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.keys[normalizeKey(key)]
	if !ok {
		return "", nil, false
	}
	rule := r.byCode[code]
	return rule.ID(), rule, true
}

// Rules returns every rule in code order.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]validate.Code, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	rules := make([]*Rule, len(codes))
	for i, code := range codes {
		rules[i] = r.byCode[code]
	}
	return rules
}

// IDs returns every rule ID in code order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry holds the built-in rules, one per diagnostic code.
//
//nolint:gochecknoglobals // Shared read-mostly registry.
var DefaultRegistry = newDefaultRegistry()
