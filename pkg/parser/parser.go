// Package parser turns JavaScript source into the syntax tree and scope arena
// consumed by the lint engine.
//
// # Usage
//
//	prog, err := parser.Parse("app.js", src)
//	if err != nil {
//	    var perr *parser.ParseError
//	    if errors.As(err, &perr) { ... }
//	}
//
// Parsing is delegated to github.com/dop251/goja/parser. The goja tree is then
// converted node by node into core.Node values carrying ESTree type names, and
// every node is assigned the innermost lexical scope it lies in:
//
//	Program                          → global scope
//	function, arrow, method, static  → function scope (the body block shares it)
//	other block statements           → block scope
//	for / for-in / for-of head       → block scope
//	switch                           → one block scope across all cases
//	catch clause, class              → block scope
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	jsparser "github.com/dop251/goja/parser"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Parse parses src and returns the program with its scope arena.
func Parse(filename, src string) (*core.Program, error) {
	jsProg, err := jsparser.ParseFile(nil, filename, src, 0, jsparser.WithDisableSourceMaps)
	if err != nil {
		return nil, newParseError(filename, src, err)
	}

	b := newBuilder(src)
	root := b.program(jsProg)

	return &core.Program{
		Filename: filename,
		Source:   src,
		Root:     root,
		Scopes:   b.scopes,
	}, nil
}

// builder converts a goja tree into core nodes while tracking the current scope.
type builder struct {
	src    string
	lines  *token.LineIndex
	scopes *core.ScopeTree
	scope  core.ScopeID
}

func newBuilder(src string) *builder {
	return &builder{
		src:    src,
		lines:  token.NewLineIndex(src),
		scopes: core.NewScopeTree(),
		scope:  core.NoScope,
	}
}

// offset converts a goja file index (1-based, file base 1) into a byte offset.
func offset(idx file.Idx) int {
	return int(idx) - 1
}

func (b *builder) spanOf(n ast.Node) token.Span {
	return b.lines.Span(offset(n.Idx0()), offset(n.Idx1()))
}

func (b *builder) spanRange(start, end int) token.Span {
	return b.lines.Span(start, end)
}

// add creates a node in the current scope and links it under parent.
func (b *builder) add(parent *core.Node, typ core.NodeType, span token.Span) *core.Node {
	n := &core.Node{Type: typ, Span: span, Parent: parent, Scope: b.scope}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// open starts a new scope owned by n. The returned func restores the previous one.
func (b *builder) open(kind core.ScopeKind, n *core.Node) func() {
	prev := b.scope
	id := b.scopes.Add(kind, prev, n)
	n.Scope = id
	b.scope = id
	return func() { b.scope = prev }
}

func (b *builder) program(p *ast.Program) *core.Node {
	root := b.add(nil, core.NodeProgram, b.spanRange(0, len(b.src)))
	closeScope := b.open(core.ScopeGlobal, root)
	defer closeScope()

	for _, stmt := range p.Body {
		b.statement(root, stmt)
	}
	return root
}

// keywordBefore finds kw immediately before off, skipping whitespace.
// It returns off unchanged when the keyword is not there.
func (b *builder) keywordBefore(off int, kw string) int {
	i := off
	for i > 0 && isSpace(b.src[i-1]) {
		i--
	}
	if i >= len(kw) && b.src[i-len(kw):i] == kw {
		return i - len(kw)
	}
	return off
}

// indexFrom returns the offset of the first s at or after off, or off.
func (b *builder) indexFrom(off int, s string) int {
	if off < 0 || off > len(b.src) {
		return off
	}
	if i := strings.Index(b.src[off:], s); i >= 0 {
		return off + i
	}
	return off
}

// withSemicolon extends end over a directly following semicolon.
func (b *builder) withSemicolon(end int) int {
	if end >= 0 && end < len(b.src) && b.src[end] == ';' {
		return end + 1
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// goTypeName maps goja node types without an ESTree counterpart to a tag,
// e.g. *ast.PrivateIdentifier becomes "PrivateIdentifier".
func goTypeName(v any) core.NodeType {
	name := fmt.Sprintf("%T", v)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return core.NodeType(name)
}

// ParseError represents a syntax error with position information.
type ParseError struct {
	Filename string
	Pos      token.Position
	Message  string

	// Count is the number of syntax errors goja reported; only the first is described.
	Count int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newParseError(filename, src string, err error) error {
	lines := token.NewLineIndex(src)
	perr := &ParseError{Filename: filename, Message: err.Error(), Count: 1}

	var list jsparser.ErrorList
	var single *jsparser.Error
	switch {
	case errors.As(err, &list) && len(list) > 0:
		perr.Count = len(list)
		single = list[0]
	case errors.As(err, &single):
	default:
		return perr
	}

	perr.Message = single.Message
	perr.Pos = token.Position{
		Line:   single.Position.Line,
		Column: single.Position.Column,
		Offset: lines.Offset(single.Position.Line, single.Position.Column),
	}
	return perr
}
