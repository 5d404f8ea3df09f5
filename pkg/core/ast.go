package core

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// NodeType is the ESTree type tag of a syntax node, e.g. "VariableDeclaration".
// Rules subscribe to node types by tag; the dispatcher never inspects fields.
type NodeType string

// Node types produced by the parser bridge.
const (
	NodeProgram NodeType = "Program"

	// Statements and declarations
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeVariableDeclarator  NodeType = "VariableDeclarator"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeClassDeclaration    NodeType = "ClassDeclaration"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeEmptyStatement      NodeType = "EmptyStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeForStatement        NodeType = "ForStatement"
	NodeForInStatement      NodeType = "ForInStatement"
	NodeForOfStatement      NodeType = "ForOfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeDoWhileStatement    NodeType = "DoWhileStatement"
	NodeSwitchStatement     NodeType = "SwitchStatement"
	NodeSwitchCase          NodeType = "SwitchCase"
	NodeTryStatement        NodeType = "TryStatement"
	NodeCatchClause         NodeType = "CatchClause"
	NodeLabeledStatement    NodeType = "LabeledStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeThrowStatement      NodeType = "ThrowStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeDebuggerStatement   NodeType = "DebuggerStatement"
	NodeWithStatement       NodeType = "WithStatement"

	// Functions and classes
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	NodeClassExpression         NodeType = "ClassExpression"
	NodeClassBody               NodeType = "ClassBody"
	NodeMethodDefinition        NodeType = "MethodDefinition"
	NodePropertyDefinition      NodeType = "PropertyDefinition"
	NodeStaticBlock             NodeType = "StaticBlock"

	// Patterns
	NodeIdentifier        NodeType = "Identifier"
	NodePrivateIdentifier NodeType = "PrivateIdentifier"
	NodeArrayPattern      NodeType = "ArrayPattern"
	NodeObjectPattern     NodeType = "ObjectPattern"
	NodeAssignmentPattern NodeType = "AssignmentPattern"
	NodeRestElement       NodeType = "RestElement"

	// Expressions
	NodeLiteral                  NodeType = "Literal"
	NodeTemplateLiteral          NodeType = "TemplateLiteral"
	NodeTaggedTemplateExpression NodeType = "TaggedTemplateExpression"
	NodeArrayExpression          NodeType = "ArrayExpression"
	NodeObjectExpression         NodeType = "ObjectExpression"
	NodeProperty                 NodeType = "Property"
	NodeSpreadElement            NodeType = "SpreadElement"
	NodeAssignmentExpression     NodeType = "AssignmentExpression"
	NodeBinaryExpression         NodeType = "BinaryExpression"
	NodeLogicalExpression        NodeType = "LogicalExpression"
	NodeUnaryExpression          NodeType = "UnaryExpression"
	NodeUpdateExpression         NodeType = "UpdateExpression"
	NodeConditionalExpression    NodeType = "ConditionalExpression"
	NodeCallExpression           NodeType = "CallExpression"
	NodeNewExpression            NodeType = "NewExpression"
	NodeMemberExpression         NodeType = "MemberExpression"
	NodeChainExpression          NodeType = "ChainExpression"
	NodeSequenceExpression       NodeType = "SequenceExpression"
	NodeThisExpression           NodeType = "ThisExpression"
	NodeSuper                    NodeType = "Super"
	NodeYieldExpression          NodeType = "YieldExpression"
	NodeAwaitExpression          NodeType = "AwaitExpression"
	NodeMetaProperty             NodeType = "MetaProperty"
)

// DeclKind is the keyword of a declaration statement.
type DeclKind string

// Declaration kinds.
const (
	DeclVar   DeclKind = "var"
	DeclLet   DeclKind = "let"
	DeclConst DeclKind = "const"
)

// DeclKinds lists every declaration kind in a fixed order.
var DeclKinds = []DeclKind{DeclVar, DeclLet, DeclConst}

// ParseDeclKind converts a keyword into a DeclKind.
func ParseDeclKind(s string) (DeclKind, error) {
	switch k := DeclKind(strings.TrimSpace(s)); k {
	case DeclVar, DeclLet, DeclConst:
		return k, nil
	default:
		return "", fmt.Errorf("unknown declaration kind %q", s)
	}
}

// IsBlockScoped reports whether the kind binds to the innermost block scope.
func (k DeclKind) IsBlockScoped() bool {
	return k == DeclLet || k == DeclConst
}

// Node is one node of the syntax tree. The parser owns the tree and the
// engine borrows it read-only for the duration of a run.
type Node struct {
	Type     NodeType
	Span     token.Span
	Parent   *Node
	Children []*Node // document order

	// Scope is the innermost scope the node lies in. Nodes that open a
	// scope (functions, blocks, loops, switch) carry the scope they open.
	Scope ScopeID

	// Kind is set on VariableDeclaration nodes only.
	Kind DeclKind

	// Name is set on identifiers and on named functions and classes.
	Name string
}

// Pos returns the start position of the node.
func (n *Node) Pos() token.Position {
	return n.Span.Start
}

// End returns the end position of the node.
func (n *Node) End() token.Position {
	return n.Span.End
}

// Is reports whether the node has one of the given types.
func (n *Node) Is(types ...NodeType) bool {
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}

// Declarators returns the VariableDeclarator children of a declaration.
// A destructuring declarator counts once however many names it binds.
func (n *Node) Declarators() []*Node {
	if n.Type != NodeVariableDeclaration {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Type == NodeVariableDeclarator {
			out = append(out, c)
		}
	}
	return out
}

// Ancestors returns the chain of parents, nearest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Source returns the text covered by the node.
func (n *Node) Source(src string) string {
	start, end := n.Span.Start.Offset, n.Span.End.Offset
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// String renders a short description, used in logs and crash reports.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)@%s", n.Type, n.Name, n.Span.Start)
	}
	if n.Kind != "" {
		return fmt.Sprintf("%s(%s)@%s", n.Type, n.Kind, n.Span.Start)
	}
	return fmt.Sprintf("%s@%s", n.Type, n.Span.Start)
}

// Program is the unit of analysis: one parsed source file.
type Program struct {
	Filename string
	Source   string
	Root     *Node
	Scopes   *ScopeTree
}
