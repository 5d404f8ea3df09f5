package lint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// ErrInvalidOptions is wrapped by option resolvers that reject a rule's options.
var ErrInvalidOptions = errors.New("invalid rule options")

// Diagnostic represents a lint violation.
type Diagnostic struct {
	RuleID   string
	Severity core.Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position
	NodeType core.NodeType
	Fixes    []Fix

	// Enhanced metadata for IDE integration
	DocumentationURL string        // Link to rule documentation
	ImpactScore      int           // 0-100, for prioritization
	AutoFixable      bool          // Whether Fixes can be auto-applied
	RelatedInfo      []RelatedInfo // Additional context locations
}

// RelatedInfo provides additional context for a diagnostic.
type RelatedInfo struct {
	Pos     token.Position
	Message string
}

// Fix represents a suggested fix for a diagnostic.
type Fix struct {
	Description string
	TextEdits   []TextEdit
}

// TextEdit represents a single text replacement.
type TextEdit struct {
	Pos     token.Position
	EndPos  token.Position
	NewText string
}

// =============================================================================
// Selectors
// =============================================================================

// Phase says whether a handler runs when a node is entered or exited.
type Phase int

// Traversal phases.
const (
	PhaseEnter Phase = iota
	PhaseExit
)

func (p Phase) String() string {
	if p == PhaseExit {
		return "exit"
	}
	return "enter"
}

// Selector names a node type and the traversal phase a handler subscribes to.
type Selector struct {
	Type  core.NodeType
	Phase Phase
}

// On selects nodes of type t on enter.
func On(t core.NodeType) Selector {
	return Selector{Type: t, Phase: PhaseEnter}
}

// OnExit selects nodes of type t on exit.
func OnExit(t core.NodeType) Selector {
	return Selector{Type: t, Phase: PhaseExit}
}

// ParseSelector parses "Type" or "Type:exit".
func ParseSelector(s string) (Selector, error) {
	name, phase, found := strings.Cut(strings.TrimSpace(s), ":")
	if name == "" {
		return Selector{}, fmt.Errorf("empty selector %q", s)
	}
	if !found {
		return On(core.NodeType(name)), nil
	}
	if phase != "exit" {
		return Selector{}, fmt.Errorf("unknown selector phase %q in %q", phase, s)
	}
	return OnExit(core.NodeType(name)), nil
}

func (s Selector) String() string {
	if s.Phase == PhaseExit {
		return string(s.Type) + ":exit"
	}
	return string(s.Type)
}

// Handler is invoked for each node matching its selector. A returned error
// is treated like a panic: the rule is switched off for the rest of the unit.
type Handler func(node *core.Node) error

// Handlers maps selectors to the rule's callbacks.
type Handlers map[Selector]Handler

// =============================================================================
// Rules
// =============================================================================

// Rule is the interface every lint rule implements.
type Rule interface {
	ID() string
	Name() string
	Group() string
	Description() string
	DefaultSeverity() core.Severity
	ConfigKeys() []string

	// Documentation
	Rationale() string
	BadExample() string
	GoodExample() string
	Fix() string

	// ResolveOptions validates the raw options from configuration and returns
	// the value handed to every RuleContext. It runs once per activation.
	ResolveOptions(raw []any) (any, error)

	// Create builds the rule's handlers for one analyzed unit. Any state the
	// handlers share lives in the closure and never outlives the unit.
	Create(ctx *RuleContext) (Handlers, error)
}

// OptionsFunc resolves raw configuration options.
type OptionsFunc func(raw []any) (any, error)

// CreateFunc builds a rule's handlers for one unit.
type CreateFunc func(ctx *RuleContext) (Handlers, error)

// RuleDef defines a lint rule as data.
type RuleDef struct {
	ID          string          // Rule identifier, e.g. "one-var"
	Name        string          // Human-readable name, e.g. "style.one-var"
	Group       string          // Category, e.g. "style"
	Description string          // One-line description
	Severity    core.Severity   // Default severity
	ConfigKeys  []string        // Option keys the rule accepts
	NodeTypes   []core.NodeType // Node types the rule subscribes to, for docs

	// Documentation fields
	Rationale   string // Why this rule exists
	BadExample  string // Example of code that violates
	GoodExample string // Example of correct code
	Fix         string // How to fix violations

	Options OptionsFunc
	Create  CreateFunc
}

// WrapRuleDef wraps a RuleDef as a Rule.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

type wrappedRuleDef struct {
	def RuleDef
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) Rationale() string              { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string             { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string            { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string                    { return w.def.Fix }

// ResolveOptions defers to the definition's resolver. Rules without one
// receive the raw options unchanged.
func (w *wrappedRuleDef) ResolveOptions(raw []any) (any, error) {
	if w.def.Options == nil {
		return raw, nil
	}
	return w.def.Options(raw)
}

func (w *wrappedRuleDef) Create(ctx *RuleContext) (Handlers, error) {
	if w.def.Create == nil {
		return nil, fmt.Errorf("rule %s has no Create function", w.def.ID)
	}
	return w.def.Create(ctx)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}

// GetRuleInfo converts a Rule to a RuleInfo DTO.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
	if w, ok := r.(interface{ Unwrap() RuleDef }); ok {
		info.NodeTypes = w.Unwrap().NodeTypes
	}
	return info
}
