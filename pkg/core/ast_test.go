package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func TestNode_Declarators(t *testing.T) {
	decl := &core.Node{Type: core.NodeVariableDeclaration, Kind: core.DeclVar}
	a := &core.Node{Type: core.NodeVariableDeclarator, Parent: decl}
	pattern := &core.Node{Type: core.NodeVariableDeclarator, Parent: decl}
	pattern.Children = []*core.Node{
		{Type: core.NodeArrayPattern, Parent: pattern},
	}
	decl.Children = []*core.Node{a, pattern}

	assert.Len(t, decl.Declarators(), 2)
	assert.Nil(t, a.Declarators(), "only declarations have declarators")
}

func TestNode_Ancestors(t *testing.T) {
	root := &core.Node{Type: core.NodeProgram}
	fn := &core.Node{Type: core.NodeFunctionDeclaration, Parent: root}
	body := &core.Node{Type: core.NodeBlockStatement, Parent: fn}

	got := body.Ancestors()
	require.Len(t, got, 2)
	assert.Same(t, fn, got[0])
	assert.Same(t, root, got[1])
	assert.Empty(t, root.Ancestors())
}

func TestNode_IsAndSource(t *testing.T) {
	src := "var a = 1;"
	n := &core.Node{
		Type: core.NodeVariableDeclaration,
		Kind: core.DeclVar,
		Span: token.Span{
			Start: token.Position{Line: 1, Column: 1, Offset: 0},
			End:   token.Position{Line: 1, Column: 11, Offset: 10},
		},
	}

	assert.True(t, n.Is(core.NodeIdentifier, core.NodeVariableDeclaration))
	assert.False(t, n.Is(core.NodeIdentifier))
	assert.Equal(t, src, n.Source(src))
	assert.Equal(t, "VariableDeclaration(var)@1:1", n.String())
}

func TestParseDeclKind(t *testing.T) {
	for _, k := range core.DeclKinds {
		got, err := core.ParseDeclKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := core.ParseDeclKind("using")
	assert.Error(t, err)

	assert.False(t, core.DeclVar.IsBlockScoped())
	assert.True(t, core.DeclLet.IsBlockScoped())
	assert.True(t, core.DeclConst.IsBlockScoped())
}
