package parser

import (
	"github.com/dop251/goja/ast"
	jstoken "github.com/dop251/goja/token"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

func (b *builder) expressions(parent *core.Node, list []ast.Expression) {
	for _, e := range list {
		b.expression(parent, e)
	}
}

func (b *builder) expression(parent *core.Node, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.Identifier:
		if e == nil {
			return
		}
		n := b.add(parent, core.NodeIdentifier, b.spanOf(e))
		n.Name = string(e.Name)

	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.RegExpLiteral:
		b.add(parent, core.NodeLiteral, b.spanOf(e))

	case *ast.TemplateLiteral:
		if e.Tag != nil {
			n := b.add(parent, core.NodeTaggedTemplateExpression, b.spanOf(e))
			b.expression(n, e.Tag)
			tpl := b.add(n, core.NodeTemplateLiteral, b.spanRange(offset(e.OpenQuote), offset(e.CloseQuote)+1))
			b.expressions(tpl, e.Expressions)
			return
		}
		n := b.add(parent, core.NodeTemplateLiteral, b.spanOf(e))
		b.expressions(n, e.Expressions)

	case *ast.ThisExpression:
		b.add(parent, core.NodeThisExpression, b.spanOf(e))

	case *ast.SuperExpression:
		b.add(parent, core.NodeSuper, b.spanOf(e))

	case *ast.MetaProperty:
		b.add(parent, core.NodeMetaProperty, b.spanOf(e))

	case *ast.ArrayLiteral:
		n := b.add(parent, core.NodeArrayExpression, b.spanOf(e))
		b.expressions(n, e.Value)

	case *ast.ObjectLiteral:
		n := b.add(parent, core.NodeObjectExpression, b.spanOf(e))
		for _, p := range e.Value {
			b.property(n, p, false)
		}

	case *ast.SpreadElement:
		n := b.add(parent, core.NodeSpreadElement, b.spanOf(e))
		b.expression(n, e.Expression)

	case *ast.FunctionLiteral:
		b.function(parent, core.NodeFunctionExpression, e)

	case *ast.ArrowFunctionLiteral:
		b.arrow(parent, e)

	case *ast.ClassLiteral:
		b.class(parent, core.NodeClassExpression, e)

	case *ast.AssignExpression:
		n := b.add(parent, core.NodeAssignmentExpression, b.spanOf(e))
		b.assignTarget(n, e.Left)
		b.expression(n, e.Right)

	case *ast.BinaryExpression:
		typ := core.NodeBinaryExpression
		switch e.Operator {
		case jstoken.LOGICAL_AND, jstoken.LOGICAL_OR, jstoken.COALESCE:
			typ = core.NodeLogicalExpression
		}
		n := b.add(parent, typ, b.spanOf(e))
		b.expression(n, e.Left)
		b.expression(n, e.Right)

	case *ast.UnaryExpression:
		typ := core.NodeUnaryExpression
		if e.Operator == jstoken.INCREMENT || e.Operator == jstoken.DECREMENT {
			typ = core.NodeUpdateExpression
		}
		n := b.add(parent, typ, b.spanOf(e))
		b.expression(n, e.Operand)

	case *ast.ConditionalExpression:
		n := b.add(parent, core.NodeConditionalExpression, b.spanOf(e))
		b.expression(n, e.Test)
		b.expression(n, e.Consequent)
		b.expression(n, e.Alternate)

	case *ast.CallExpression:
		n := b.add(parent, core.NodeCallExpression, b.spanOf(e))
		b.expression(n, e.Callee)
		b.expressions(n, e.ArgumentList)

	case *ast.NewExpression:
		n := b.add(parent, core.NodeNewExpression, b.spanOf(e))
		b.expression(n, e.Callee)
		b.expressions(n, e.ArgumentList)

	case *ast.DotExpression:
		n := b.add(parent, core.NodeMemberExpression, b.spanOf(e))
		b.expression(n, e.Left)
		prop := b.add(n, core.NodeIdentifier, b.spanOf(&e.Identifier))
		prop.Name = string(e.Identifier.Name)

	case *ast.PrivateDotExpression:
		n := b.add(parent, core.NodeMemberExpression, b.spanOf(e))
		b.expression(n, e.Left)

	case *ast.BracketExpression:
		n := b.add(parent, core.NodeMemberExpression, b.spanOf(e))
		b.expression(n, e.Left)
		b.expression(n, e.Member)

	case *ast.OptionalChain:
		n := b.add(parent, core.NodeChainExpression, b.spanOf(e))
		b.expression(n, e.Expression)

	case *ast.Optional:
		b.expression(parent, e.Expression)

	case *ast.SequenceExpression:
		n := b.add(parent, core.NodeSequenceExpression, b.spanOf(e))
		b.expressions(n, e.Sequence)

	case *ast.YieldExpression:
		n := b.add(parent, core.NodeYieldExpression, b.spanOf(e))
		b.expression(n, e.Argument)

	case *ast.AwaitExpression:
		n := b.add(parent, core.NodeAwaitExpression, b.spanOf(e))
		b.expression(n, e.Argument)

	case *ast.ArrayPattern, *ast.ObjectPattern:
		b.pattern(parent, e)

	default:
		b.add(parent, goTypeName(expr), b.spanOf(expr))
	}
}

// assignTarget converts the left side of an assignment, which is a pattern
// when it destructures and a plain expression otherwise.
func (b *builder) assignTarget(parent *core.Node, left ast.Expression) {
	switch l := left.(type) {
	case *ast.ArrayPattern, *ast.ObjectPattern:
		b.pattern(parent, l)
	default:
		b.expression(parent, left)
	}
}

// pattern converts a binding target: an identifier or a destructuring pattern.
func (b *builder) pattern(parent *core.Node, target ast.Expression) {
	if target == nil {
		return
	}

	switch p := target.(type) {
	case *ast.ArrayPattern:
		n := b.add(parent, core.NodeArrayPattern, b.spanOf(p))
		for _, el := range p.Elements {
			b.pattern(n, el)
		}
		b.rest(n, p.Rest)

	case *ast.ObjectPattern:
		n := b.add(parent, core.NodeObjectPattern, b.spanOf(p))
		for _, prop := range p.Properties {
			b.property(n, prop, true)
		}
		b.rest(n, p.Rest)

	case *ast.AssignExpression:
		n := b.add(parent, core.NodeAssignmentPattern, b.spanOf(p))
		b.pattern(n, p.Left)
		b.expression(n, p.Right)

	default:
		b.expression(parent, target)
	}
}

func (b *builder) rest(parent *core.Node, rest ast.Expression) {
	if rest == nil {
		return
	}
	start := offset(rest.Idx0())
	n := b.add(parent, core.NodeRestElement, b.spanRange(b.keywordBefore(start, "..."), offset(rest.Idx1())))
	b.pattern(n, rest)
}

// property converts an object literal or object pattern member.
func (b *builder) property(parent *core.Node, prop ast.Property, inPattern bool) {
	switch p := prop.(type) {
	case *ast.PropertyShort:
		n := b.add(parent, core.NodeProperty, b.spanOf(p))
		key := b.add(n, core.NodeIdentifier, b.spanOf(&p.Name))
		key.Name = string(p.Name.Name)
		if p.Initializer != nil {
			def := b.add(n, core.NodeAssignmentPattern, b.spanOf(p))
			b.expression(def, p.Initializer)
		}

	case *ast.PropertyKeyed:
		n := b.add(parent, core.NodeProperty, b.spanOf(p))
		b.expression(n, p.Key)
		if inPattern {
			b.pattern(n, p.Value)
		} else {
			b.expression(n, p.Value)
		}

	case *ast.SpreadElement:
		if inPattern {
			b.rest(parent, p.Expression)
			return
		}
		n := b.add(parent, core.NodeSpreadElement, b.spanOf(p))
		b.expression(n, p.Expression)

	default:
		b.add(parent, goTypeName(prop), parent.Span)
	}
}

// params converts a parameter list into the function node's children.
func (b *builder) params(parent *core.Node, list *ast.ParameterList) {
	if list == nil {
		return
	}
	for _, param := range list.List {
		if param == nil {
			continue
		}
		if param.Initializer != nil {
			n := b.add(parent, core.NodeAssignmentPattern, b.spanOf(param))
			b.pattern(n, param.Target)
			b.expression(n, param.Initializer)
			continue
		}
		b.pattern(parent, param.Target)
	}
	b.rest(parent, list.Rest)
}

// function converts a function declaration or expression. The function opens
// a function scope and its body block shares that scope.
func (b *builder) function(parent *core.Node, typ core.NodeType, fn *ast.FunctionLiteral) {
	if fn == nil {
		return
	}
	n := b.add(parent, typ, b.spanOf(fn))
	if fn.Name != nil {
		n.Name = string(fn.Name.Name)
	}

	// A declaration's name binds in the enclosing scope.
	if typ == core.NodeFunctionDeclaration && fn.Name != nil {
		b.expression(n, fn.Name)
	}

	closeScope := b.open(core.ScopeFunction, n)
	defer closeScope()

	if typ != core.NodeFunctionDeclaration && fn.Name != nil {
		b.expression(n, fn.Name)
	}
	b.params(n, fn.ParameterList)
	b.block(n, fn.Body, false)
}

func (b *builder) arrow(parent *core.Node, fn *ast.ArrowFunctionLiteral) {
	n := b.add(parent, core.NodeArrowFunctionExpression, b.spanOf(fn))
	closeScope := b.open(core.ScopeFunction, n)
	defer closeScope()

	b.params(n, fn.ParameterList)
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		b.block(n, body, false)
	case *ast.ExpressionBody:
		b.expression(n, body.Expression)
	}
}

// class converts a class declaration or expression. The class opens a block
// scope; methods and static blocks open function scopes inside it.
func (b *builder) class(parent *core.Node, typ core.NodeType, cls *ast.ClassLiteral) {
	if cls == nil {
		return
	}
	n := b.add(parent, typ, b.spanOf(cls))
	if cls.Name != nil {
		n.Name = string(cls.Name.Name)
		b.expression(n, cls.Name)
	}
	b.expression(n, cls.SuperClass)

	closeScope := b.open(core.ScopeBlock, n)
	defer closeScope()

	bodyStart := offset(cls.Class)
	if cls.SuperClass != nil {
		bodyStart = offset(cls.SuperClass.Idx1())
	} else if cls.Name != nil {
		bodyStart = offset(cls.Name.Idx1())
	}
	body := b.add(n, core.NodeClassBody, b.spanRange(b.indexFrom(bodyStart, "{"), offset(cls.RightBrace)+1))

	for _, el := range cls.Body {
		switch m := el.(type) {
		case *ast.MethodDefinition:
			md := b.add(body, core.NodeMethodDefinition, b.spanOf(m))
			b.expression(md, m.Key)
			b.function(md, core.NodeFunctionExpression, m.Body)

		case *ast.FieldDefinition:
			fd := b.add(body, core.NodePropertyDefinition, b.spanOf(m))
			b.expression(fd, m.Key)
			b.expression(fd, m.Initializer)

		case *ast.ClassStaticBlock:
			sb := b.add(body, core.NodeStaticBlock, b.spanOf(m))
			closeStatic := b.open(core.ScopeFunction, sb)
			if m.Block != nil {
				b.statements(sb, m.Block.List)
			}
			closeStatic()

		default:
			b.add(body, goTypeName(el), body.Span)
		}
	}
}
