// Package rules contains the built-in JavaScript lint rules.
// Import this package to register them with the default registry.
//
// Rules are automatically registered via init() functions when this package is imported:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// Rule Categories:
//   - style: Rules about consistent code layout
package rules

// Importing this package registers the following rules:
//
// Style rules:
//   - one-var: Declarations of a kind are combined per scope, or split
