package parser

import (
	"github.com/dop251/goja/ast"
	jstoken "github.com/dop251/goja/token"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

func (b *builder) statements(parent *core.Node, list []ast.Statement) {
	for _, s := range list {
		b.statement(parent, s)
	}
}

func (b *builder) statement(parent *core.Node, stmt ast.Statement) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.BlockStatement:
		b.block(parent, s, true)

	case *ast.VariableStatement:
		start := offset(s.Idx0())
		end := b.withSemicolon(offset(s.Idx1()))
		b.declaration(parent, core.DeclVar, start, end, s.List)

	case *ast.LexicalDeclaration:
		b.lexical(parent, s, true)

	case *ast.FunctionDeclaration:
		b.function(parent, core.NodeFunctionDeclaration, s.Function)

	case *ast.ClassDeclaration:
		b.class(parent, core.NodeClassDeclaration, s.Class)

	case *ast.ExpressionStatement:
		n := b.add(parent, core.NodeExpressionStatement, b.spanOf(s))
		b.expression(n, s.Expression)

	case *ast.EmptyStatement:
		b.add(parent, core.NodeEmptyStatement, b.spanOf(s))

	case *ast.IfStatement:
		n := b.add(parent, core.NodeIfStatement, b.spanOf(s))
		b.expression(n, s.Test)
		b.statement(n, s.Consequent)
		b.statement(n, s.Alternate)

	case *ast.ForStatement:
		b.forStatement(parent, s)

	case *ast.ForInStatement:
		n := b.add(parent, core.NodeForInStatement, b.spanOf(s))
		closeScope := b.open(core.ScopeBlock, n)
		b.forInto(n, s.Into)
		b.expression(n, s.Source)
		b.statement(n, s.Body)
		closeScope()

	case *ast.ForOfStatement:
		n := b.add(parent, core.NodeForOfStatement, b.spanOf(s))
		closeScope := b.open(core.ScopeBlock, n)
		b.forInto(n, s.Into)
		b.expression(n, s.Source)
		b.statement(n, s.Body)
		closeScope()

	case *ast.WhileStatement:
		n := b.add(parent, core.NodeWhileStatement, b.spanOf(s))
		b.expression(n, s.Test)
		b.statement(n, s.Body)

	case *ast.DoWhileStatement:
		n := b.add(parent, core.NodeDoWhileStatement, b.spanOf(s))
		b.statement(n, s.Body)
		b.expression(n, s.Test)

	case *ast.SwitchStatement:
		b.switchStatement(parent, s)

	case *ast.TryStatement:
		n := b.add(parent, core.NodeTryStatement, b.spanOf(s))
		b.block(n, s.Body, true)
		if s.Catch != nil {
			c := b.add(n, core.NodeCatchClause, b.spanOf(s.Catch))
			closeScope := b.open(core.ScopeBlock, c)
			if s.Catch.Parameter != nil {
				b.pattern(c, s.Catch.Parameter)
			}
			b.block(c, s.Catch.Body, true)
			closeScope()
		}
		if s.Finally != nil {
			b.block(n, s.Finally, true)
		}

	case *ast.LabelledStatement:
		n := b.add(parent, core.NodeLabeledStatement, b.spanOf(s))
		b.expression(n, s.Label)
		b.statement(n, s.Statement)

	case *ast.ReturnStatement:
		n := b.add(parent, core.NodeReturnStatement, b.spanOf(s))
		b.expression(n, s.Argument)

	case *ast.ThrowStatement:
		n := b.add(parent, core.NodeThrowStatement, b.spanOf(s))
		b.expression(n, s.Argument)

	case *ast.BranchStatement:
		typ := core.NodeBreakStatement
		if s.Token == jstoken.CONTINUE {
			typ = core.NodeContinueStatement
		}
		n := b.add(parent, typ, b.spanOf(s))
		if s.Label != nil {
			b.expression(n, s.Label)
		}

	case *ast.DebuggerStatement:
		b.add(parent, core.NodeDebuggerStatement, b.spanOf(s))

	case *ast.WithStatement:
		n := b.add(parent, core.NodeWithStatement, b.spanOf(s))
		b.expression(n, s.Object)
		b.statement(n, s.Body)

	default:
		b.add(parent, goTypeName(stmt), b.spanOf(stmt))
	}
}

// block converts a block statement. Function bodies pass opensScope=false
// because they share the scope of the function.
func (b *builder) block(parent *core.Node, s *ast.BlockStatement, opensScope bool) *core.Node {
	if s == nil {
		return nil
	}
	n := b.add(parent, core.NodeBlockStatement, b.spanRange(offset(s.LeftBrace), offset(s.RightBrace)+1))
	if opensScope {
		closeScope := b.open(core.ScopeBlock, n)
		defer closeScope()
	}
	b.statements(n, s.List)
	return n
}

// declaration emits a VariableDeclaration spanning [start, end) with one
// VariableDeclarator per binding.
func (b *builder) declaration(parent *core.Node, kind core.DeclKind, start, end int, list []*ast.Binding) *core.Node {
	n := b.add(parent, core.NodeVariableDeclaration, b.spanRange(start, end))
	n.Kind = kind
	for _, binding := range list {
		b.declarator(n, binding)
	}
	return n
}

func (b *builder) declarator(parent *core.Node, binding *ast.Binding) {
	if binding == nil {
		return
	}
	d := b.add(parent, core.NodeVariableDeclarator, b.spanOf(binding))
	b.pattern(d, binding.Target)
	b.expression(d, binding.Initializer)
}

func (b *builder) lexical(parent *core.Node, s *ast.LexicalDeclaration, asStatement bool) {
	start := offset(s.Idx0())
	end := offset(s.Idx1())
	if asStatement {
		end = b.withSemicolon(end)
	}
	kind := core.DeclVar
	switch s.Token {
	case jstoken.LET:
		kind = core.DeclLet
	case jstoken.CONST:
		kind = core.DeclConst
	}
	b.declaration(parent, kind, start, end, s.List)
}

func (b *builder) forStatement(parent *core.Node, s *ast.ForStatement) {
	n := b.add(parent, core.NodeForStatement, b.spanOf(s))
	closeScope := b.open(core.ScopeBlock, n)
	defer closeScope()

	switch init := s.Initializer.(type) {
	case *ast.ForLoopInitializerExpression:
		b.expression(n, init.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		// goja does not record the var keyword position for loop heads.
		if len(init.List) > 0 {
			first := offset(init.List[0].Idx0())
			last := offset(init.List[len(init.List)-1].Idx1())
			b.declaration(n, core.DeclVar, b.keywordBefore(first, "var"), last, init.List)
		}
	case *ast.ForLoopInitializerLexicalDecl:
		b.lexical(n, &init.LexicalDeclaration, false)
	}

	b.expression(n, s.Test)
	b.expression(n, s.Update)
	b.statement(n, s.Body)
}

func (b *builder) forInto(parent *core.Node, into ast.ForInto) {
	switch in := into.(type) {
	case *ast.ForIntoVar:
		if in.Binding == nil {
			return
		}
		start := offset(in.Binding.Idx0())
		b.declaration(parent, core.DeclVar, b.keywordBefore(start, "var"), offset(in.Binding.Idx1()), []*ast.Binding{in.Binding})
	case *ast.ForDeclaration:
		kind := core.DeclLet
		if in.IsConst {
			kind = core.DeclConst
		}
		start := offset(in.Idx)
		n := b.add(parent, core.NodeVariableDeclaration, b.spanRange(start, offset(in.Target.Idx1())))
		n.Kind = kind
		d := b.add(n, core.NodeVariableDeclarator, b.spanOf(in.Target))
		b.pattern(d, in.Target)
	case *ast.ForIntoExpression:
		b.expression(parent, in.Expression)
	}
}

func (b *builder) switchStatement(parent *core.Node, s *ast.SwitchStatement) {
	n := b.add(parent, core.NodeSwitchStatement, b.spanRange(offset(s.Switch), offset(s.RightBrace)+1))

	// The discriminant is evaluated outside the case block.
	b.expression(n, s.Discriminant)

	closeScope := b.open(core.ScopeBlock, n)
	defer closeScope()

	for _, c := range s.Body {
		cn := b.add(n, core.NodeSwitchCase, b.spanOf(c))
		b.expression(cn, c.Test)
		b.statements(cn, c.Consequent)
	}
}
