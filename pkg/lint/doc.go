// Package lint is the rule execution core of leaplint.
//
// # Architecture
//
// A lint run has three stages:
//
//  1. Activation: a Config names the rules to run with their severity and raw
//     options. Activate resolves every rule's options exactly once, before any
//     source is read. Bad options become configuration Problems, never
//     diagnostics.
//  2. Dispatch: for each analyzed unit a fresh RuleContext and handler set is
//     created per activation. The dispatcher walks the syntax tree once,
//     depth-first, and calls every handler subscribed to a node's type on
//     enter and on exit, in activation order.
//  3. Collection: RuleContext.Report appends Diagnostics to the unit's
//     Collector in the order the calls happen. Rule crashes are recorded as
//     Problems; the crashed rule is switched off for the rest of the unit and
//     every other rule keeps running.
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// # Using the Registry
//
//	rules := lint.AllRules()
//	rule, ok := lint.GetRuleByID("one-var")
//	styleRules := lint.GetRulesByGroup("style")
//
// # Configuration
//
//	cfg := lint.NewConfig()
//	_ = cfg.SetRule("one-var", []any{"error", "never"})
//	cfg.SetSeverity("one-var", core.SeverityWarning)
//
//	linter := lint.New(cfg, lint.WithLogger(logger))
//	for _, p := range linter.ConfigProblems() { ... }
//	result := linter.LintSource("app.js", src)
//
// # Creating Custom Rules
//
//	var NoDebugger = lint.RuleDef{
//		ID:          "no-debugger",
//		Name:        "possible-errors.no-debugger",
//		Group:       "possible-errors",
//		Description: "Disallow debugger statements.",
//		Severity:    core.SeverityError,
//		Create: func(ctx *lint.RuleContext) (lint.Handlers, error) {
//			return lint.Handlers{
//				lint.On(core.NodeDebuggerStatement): func(n *core.Node) error {
//					ctx.Report(n, "Unexpected 'debugger' statement.")
//					return nil
//				},
//			}, nil
//		},
//	}
//
//	func init() {
//		lint.Register(NoDebugger)
//	}
package lint
