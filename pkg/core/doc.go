// Package core defines the shared language of the leaplint system.
//
// This package contains:
//   - The JavaScript syntax tree handed from the parser to the engine (Node, NodeType)
//   - The lexical scope arena (ScopeTree, Scope)
//   - Severity levels and rule metadata (Severity, RuleInfo)
//   - Configuration types shared by the CLI and the engine (LintConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
