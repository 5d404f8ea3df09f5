package lint

import (
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Registry holds rules keyed by ID and remembers registration order.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Add registers a rule. Registering an ID again replaces the rule but keeps
// its original position.
func (r *Registry) Add(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rules[id] = rule
}

// Get retrieves a rule by ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// All returns every rule in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// ByGroup returns the rules of a group in registration order.
func (r *Registry) ByGroup(group string) []Rule {
	var out []Rule
	for _, rule := range r.All() {
		if rule.Group() == group {
			out = append(out, rule)
		}
	}
	return out
}

// Infos returns metadata for every rule.
func (r *Registry) Infos() []core.RuleInfo {
	rules := r.All()
	infos := make([]core.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Clear removes all rules.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[string]Rule)
	r.order = nil
}

// =============================================================================
// Default registry
// =============================================================================

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry populated by rule packages' init functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a rule definition to the default registry.
// Called from init() functions in rule packages.
func Register(def RuleDef) {
	defaultRegistry.Add(WrapRuleDef(def))
}

// RegisterRule adds a Rule implementation to the default registry.
func RegisterRule(rule Rule) {
	defaultRegistry.Add(rule)
}

// GetRuleByID retrieves a rule by ID from the default registry.
func GetRuleByID(id string) (Rule, bool) {
	return defaultRegistry.Get(id)
}

// GetAllRules returns all registered rules.
func GetAllRules() []Rule {
	return defaultRegistry.All()
}

// GetRulesByGroup returns rules in a specific group.
func GetRulesByGroup(group string) []Rule {
	return defaultRegistry.ByGroup(group)
}

// AllRules returns metadata for all registered rules.
func AllRules() []core.RuleInfo {
	return defaultRegistry.Infos()
}

// Count returns the number of registered rules.
func Count() int {
	return defaultRegistry.Count()
}

// Clear removes all rules from the default registry (for testing).
func Clear() {
	defaultRegistry.Clear()
}
