package rules

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func init() {
	lint.Register(OneVar)
}

// Mode is the one-var policy for one declaration kind.
type Mode string

// One-var modes.
const (
	ModeAlways Mode = "always" // one statement per kind per scope
	ModeNever  Mode = "never"  // one declarator per statement
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAlways, ModeNever:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: mode must be %q or %q, got %q", lint.ErrInvalidOptions, ModeAlways, ModeNever, s)
	}
}

// OneVarOptions is the resolved per-kind configuration of one-var.
type OneVarOptions struct {
	Var   Mode
	Let   Mode
	Const Mode
}

// ModeFor returns the mode governing declarations of kind.
func (o OneVarOptions) ModeFor(kind core.DeclKind) Mode {
	switch kind {
	case core.DeclLet:
		return o.Let
	case core.DeclConst:
		return o.Const
	default:
		return o.Var
	}
}

// OneVar enforces combined or split variable declarations.
var OneVar = lint.RuleDef{
	ID:          "one-var",
	Name:        "style.one-var",
	Group:       "style",
	Description: "Enforce variables to be declared either together or separately per scope.",
	Severity:    core.SeverityError,
	ConfigKeys:  []string{"var", "let", "const"},
	NodeTypes:   []core.NodeType{core.NodeVariableDeclaration},
	Options:     resolveOneVarOptions,
	Create:      createOneVar,

	Rationale: `Mixing single and multiple declarations makes it harder to see at a glance
which names a scope introduces. Picking one style per declaration kind keeps scopes uniform.`,

	BadExample: `function foo() {
  var bar = true;
  var baz = false;
}`,

	GoodExample: `function foo() {
  var bar = true,
      baz = false;
}`,

	Fix: `With "always", merge the statement into the first declaration of the same kind in its scope. With "never", write one declarator per statement.`,
}

// oneVarObject is the object form of the option, e.g. {var: always, let: never}.
type oneVarObject struct {
	Var   string `mapstructure:"var"`
	Let   string `mapstructure:"let"`
	Const string `mapstructure:"const"`
}

func resolveOneVarOptions(raw []any) (any, error) {
	opts := OneVarOptions{Var: ModeAlways, Let: ModeAlways, Const: ModeAlways}
	if len(raw) == 0 {
		return opts, nil
	}
	if len(raw) > 1 {
		return nil, fmt.Errorf("%w: expected a single option, got %d", lint.ErrInvalidOptions, len(raw))
	}

	if s, ok := raw[0].(string); ok {
		mode, err := ParseMode(s)
		if err != nil {
			return nil, err
		}
		return OneVarOptions{Var: mode, Let: mode, Const: mode}, nil
	}

	m, ok := lint.OptionMap(raw)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mode or an object, got %T", lint.ErrInvalidOptions, raw[0])
	}

	var obj oneVarObject
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &obj,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", lint.ErrInvalidOptions, err)
	}

	for _, f := range []struct {
		key   string
		value string
		dst   *Mode
	}{
		{"var", obj.Var, &opts.Var},
		{"let", obj.Let, &opts.Let},
		{"const", obj.Const, &opts.Const},
	} {
		if _, present := m[f.key]; !present {
			continue
		}
		mode, err := ParseMode(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = mode
	}
	return opts, nil
}

// tallyKey identifies the declarations of one kind in one scope.
type tallyKey struct {
	scope core.ScopeID
	kind  core.DeclKind
}

func createOneVar(ctx *lint.RuleContext) (lint.Handlers, error) {
	opts, ok := lint.OptionsAs[OneVarOptions](ctx)
	if !ok {
		return nil, fmt.Errorf("unexpected options type %T", ctx.Options())
	}
	seen := make(map[tallyKey]struct{})

	return lint.Handlers{
		lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
			if opts.ModeFor(n.Kind) == ModeNever {
				if len(n.Declarators()) > 1 {
					ctx.Reportf(n, "Split '%s' declaration into multiple statements.", n.Kind)
				}
				return nil
			}

			scope, err := governingScope(ctx.Scopes(), n)
			if err != nil {
				return fmt.Errorf("resolve scope of %s: %w", n, err)
			}
			key := tallyKey{scope: scope.ID, kind: n.Kind}
			if _, dup := seen[key]; dup {
				ctx.Reportf(n, "Combine this with the previous '%s' statement.", n.Kind)
				return nil
			}
			seen[key] = struct{}{}
			return nil
		},
	}, nil
}

// governingScope returns the scope a declaration binds in: the nearest
// function or global scope for var, the innermost scope for let and const.
func governingScope(scopes *core.ScopeTree, n *core.Node) (core.Scope, error) {
	if scopes == nil {
		return core.Scope{}, core.ErrScopeNotFound
	}
	if n.Kind.IsBlockScoped() {
		return scopes.Get(n.Scope)
	}
	return scopes.VarScope(n.Scope)
}
