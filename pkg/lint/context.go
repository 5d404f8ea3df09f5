package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// RuleContext is a rule's view of the unit being analyzed. One context is
// created per activation and unit; it is never shared across units.
type RuleContext struct {
	activation *Activation
	program    *core.Program
	collector  *Collector
	recorder   Recorder
	logger     *slog.Logger

	node *core.Node
}

func newRuleContext(a *Activation, prog *core.Program, c *Collector, rec Recorder, logger *slog.Logger) *RuleContext {
	return &RuleContext{
		activation: a,
		program:    prog,
		collector:  c,
		recorder:   rec,
		logger:     logger.With("rule", a.ID()),
	}
}

// ID returns the rule's ID.
func (c *RuleContext) ID() string { return c.activation.ID() }

// Severity returns the severity the rule reports at.
func (c *RuleContext) Severity() core.Severity { return c.activation.Severity }

// Options returns the options produced by the rule's resolver.
func (c *RuleContext) Options() any { return c.activation.Options }

// Program returns the unit being analyzed.
func (c *RuleContext) Program() *core.Program { return c.program }

// Filename returns the unit's file name.
func (c *RuleContext) Filename() string { return c.program.Filename }

// Source returns the unit's source text.
func (c *RuleContext) Source() string { return c.program.Source }

// Logger returns a logger tagged with the rule ID.
func (c *RuleContext) Logger() *slog.Logger { return c.logger }

// Node returns the node currently being dispatched, or nil outside a handler.
func (c *RuleContext) Node() *core.Node { return c.node }

// Ancestors returns the ancestors of the current node, nearest first.
func (c *RuleContext) Ancestors() []*core.Node {
	if c.node == nil {
		return nil
	}
	return c.node.Ancestors()
}

// Scopes returns the unit's scope arena.
func (c *RuleContext) Scopes() *core.ScopeTree { return c.program.Scopes }

// Scope returns the innermost scope of n, or of the current node if n is nil.
func (c *RuleContext) Scope(n *core.Node) (core.Scope, error) {
	if n == nil {
		n = c.node
	}
	if n == nil {
		return core.Scope{}, fmt.Errorf("%w: no current node", core.ErrScopeNotFound)
	}
	return c.program.Scopes.Get(n.Scope)
}

// Report records a violation located at node. A nil node reports at the
// node currently being dispatched.
func (c *RuleContext) Report(node *core.Node, message string) {
	if node == nil {
		node = c.node
	}
	d := Diagnostic{
		RuleID:           c.ID(),
		Severity:         c.Severity(),
		Message:          message,
		DocumentationURL: BuildDocURL(c.ID()),
		ImpactScore:      impactFor(c.Severity()),
	}
	if node != nil {
		d.Pos = node.Pos()
		d.EndPos = node.End()
		d.NodeType = node.Type
	}
	c.collector.Add(d)
	c.recorder.ObserveDiagnostic(d.RuleID, d.Severity)
}

// Reportf is like Report with a formatted message.
func (c *RuleContext) Reportf(node *core.Node, format string, args ...any) {
	c.Report(node, fmt.Sprintf(format, args...))
}

// OptionsAs returns the rule's resolved options as T.
func OptionsAs[T any](ctx *RuleContext) (T, bool) {
	v, ok := ctx.Options().(T)
	return v, ok
}
