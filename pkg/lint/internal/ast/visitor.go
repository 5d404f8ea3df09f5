// Package ast provides syntax tree traversal for the engine.
package ast

import "github.com/leapstack-labs/leaplint/pkg/core"

// Walk traverses the tree depth-first in document order. enter is called
// before a node's children and exit after them. If enter returns false the
// node's children are skipped, but exit is still called for the node.
// Either callback may be nil.
func Walk(node *core.Node, enter func(n *core.Node) bool, exit func(n *core.Node)) {
	if node == nil {
		return
	}
	descend := true
	if enter != nil {
		descend = enter(node)
	}
	if descend {
		for _, child := range node.Children {
			Walk(child, enter, exit)
		}
	}
	if exit != nil {
		exit(node)
	}
}
