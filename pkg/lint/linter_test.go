package lint_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/parser"
)

func testRule(id string, create lint.CreateFunc) lint.Rule {
	return lint.WrapRuleDef(lint.RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: core.SeverityError,
		Create:   create,
	})
}

// tracer records every enter and exit of the given node types.
func tracer(id string, log *[]string, types ...core.NodeType) lint.Rule {
	return testRule(id, func(ctx *lint.RuleContext) (lint.Handlers, error) {
		h := lint.Handlers{}
		for _, typ := range types {
			typ := typ
			h[lint.On(typ)] = func(n *core.Node) error {
				*log = append(*log, fmt.Sprintf("%s enter %s", id, typ))
				return nil
			}
			h[lint.OnExit(typ)] = func(n *core.Node) error {
				*log = append(*log, fmt.Sprintf("%s exit %s", id, typ))
				return nil
			}
		}
		return h, nil
	})
}

func newLinter(t *testing.T, cfg *lint.Config, rules ...lint.Rule) *lint.Linter {
	t.Helper()
	reg := lint.NewRegistry()
	for _, r := range rules {
		reg.Add(r)
	}
	return lint.New(cfg, lint.WithRegistry(reg), lint.WithLogger(testutil.NewTestLogger(t)))
}

func TestLinter_DispatchOrder(t *testing.T) {
	var log []string
	l := newLinter(t, nil,
		tracer("first", &log, core.NodeProgram, core.NodeVariableDeclaration),
		tracer("second", &log, core.NodeProgram, core.NodeVariableDeclaration),
	)

	res := l.LintSource("order.js", "var a;")
	require.Empty(t, res.Problems)

	assert.Equal(t, []string{
		"first enter Program",
		"second enter Program",
		"first enter VariableDeclaration",
		"second enter VariableDeclaration",
		"first exit VariableDeclaration",
		"second exit VariableDeclaration",
		"first exit Program",
		"second exit Program",
	}, log)
}

func TestLinter_ConfiguredRulesActivateFirst(t *testing.T) {
	var log []string
	cfg := lint.NewConfig()
	require.NoError(t, cfg.SetRule("second", "error"))

	l := newLinter(t, cfg,
		tracer("first", &log, core.NodeProgram),
		tracer("second", &log, core.NodeProgram),
	)
	l.LintSource("order.js", "")

	assert.Equal(t, []string{
		"second enter Program",
		"first enter Program",
		"second exit Program",
		"first exit Program",
	}, log)
}

func TestLinter_ReportOrderAndFields(t *testing.T) {
	rule := testRule("decls", func(ctx *lint.RuleContext) (lint.Handlers, error) {
		return lint.Handlers{
			lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
				ctx.Reportf(n, "declaration %s", n.Kind)
				return nil
			},
			lint.OnExit(core.NodeProgram): func(*core.Node) error {
				ctx.Report(nil, "end of program")
				return nil
			},
		}, nil
	})

	cfg := lint.NewConfig()
	require.NoError(t, cfg.SetRule("decls", "warn"))
	l := newLinter(t, cfg, rule)

	res := l.LintSource("report.js", "let b;\nvar a;")
	require.Len(t, res.Diagnostics, 3)

	assert.Equal(t, "declaration let", res.Diagnostics[0].Message)
	assert.Equal(t, "declaration var", res.Diagnostics[1].Message)
	assert.Equal(t, "end of program", res.Diagnostics[2].Message)

	d := res.Diagnostics[1]
	assert.Equal(t, "decls", d.RuleID)
	assert.Equal(t, core.SeverityWarning, d.Severity)
	assert.Equal(t, core.NodeVariableDeclaration, d.NodeType)
	assert.Equal(t, 2, d.Pos.Line)
	assert.Equal(t, 1, d.Pos.Column)
	assert.Equal(t, 2, d.EndPos.Line)
	assert.Equal(t, lint.BuildDocURL("decls"), d.DocumentationURL)

	assert.Equal(t, core.NodeProgram, res.Diagnostics[2].NodeType)
	assert.Equal(t, 0, res.ErrorCount())
	assert.Equal(t, 3, res.WarningCount())
}

func TestLinter_CrashIsolation(t *testing.T) {
	tests := []struct {
		name    string
		handler lint.Handler
	}{
		{"panic", func(*core.Node) error { panic("boom") }},
		{"error", func(*core.Node) error { return errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			crasher := testRule("crasher", func(ctx *lint.RuleContext) (lint.Handlers, error) {
				return lint.Handlers{
					lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
						calls++
						return tt.handler(n)
					},
				}, nil
			})
			healthy := testRule("healthy", func(ctx *lint.RuleContext) (lint.Handlers, error) {
				return lint.Handlers{
					lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
						ctx.Report(n, "seen")
						return nil
					},
				}, nil
			})

			l := newLinter(t, nil, crasher, healthy)
			res := l.LintSource("crash.js", "var a;\nvar b;\nvar c;")

			assert.Equal(t, 1, calls, "crashed rule is switched off for the unit")
			assert.Len(t, res.Diagnostics, 3, "other rules keep running")
			require.Len(t, res.Problems, 1)

			p := res.Problems[0]
			assert.Equal(t, lint.ProblemCrash, p.Kind)
			assert.Equal(t, "crasher", p.RuleID)
			assert.Equal(t, "crash.js", p.Filename)
			assert.Equal(t, 1, p.Pos.Line)
			assert.Contains(t, p.Message, "boom")

			// The next unit starts with the rule active again.
			res = l.LintSource("again.js", "var x;")
			assert.Equal(t, 2, calls)
			require.Len(t, res.Problems, 1)
		})
	}
}

func TestLinter_CreateFailure(t *testing.T) {
	broken := testRule("broken", func(*lint.RuleContext) (lint.Handlers, error) {
		return nil, errors.New("cannot build")
	})
	var log []string
	l := newLinter(t, nil, broken, tracer("ok", &log, core.NodeProgram))

	res := l.LintSource("create.js", "")
	require.Len(t, res.Problems, 1)
	assert.Equal(t, lint.ProblemCrash, res.Problems[0].Kind)
	assert.Equal(t, "broken", res.Problems[0].RuleID)
	assert.Contains(t, res.Problems[0].Message, "cannot build")
	assert.Len(t, log, 2)
}

func TestLinter_StatePerUnit(t *testing.T) {
	creates := 0
	counter := testRule("counter", func(ctx *lint.RuleContext) (lint.Handlers, error) {
		creates++
		seen := 0
		return lint.Handlers{
			lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
				seen++
				if seen > 1 {
					ctx.Report(n, "again")
				}
				return nil
			},
		}, nil
	})

	l := newLinter(t, nil, counter)
	first := l.LintSource("one.js", "var a;\nvar b;")
	second := l.LintSource("two.js", "var c;")

	assert.Equal(t, 2, creates)
	assert.Len(t, first.Diagnostics, 1)
	assert.Empty(t, second.Diagnostics, "state does not leak across units")
}

func TestLinter_RepeatedLintIsIdentical(t *testing.T) {
	dup := testRule("dup", func(ctx *lint.RuleContext) (lint.Handlers, error) {
		seen := map[string]bool{}
		return lint.Handlers{
			lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
				if seen[string(n.Kind)] {
					ctx.Reportf(n, "repeated %s", n.Kind)
				}
				seen[string(n.Kind)] = true
				return nil
			},
		}, nil
	})

	prog, err := parser.Parse("same.js", "var a;\nvar b;\nlet c;\nfunction f() { let d; let e; }\nvar g;")
	require.NoError(t, err)

	l := newLinter(t, nil, dup)
	first := l.Lint(prog)
	second := l.Lint(prog)

	require.Len(t, first.Diagnostics, 4)
	assert.Equal(t, first, second)
}

func TestLinter_ConfigProblems(t *testing.T) {
	strict := lint.WrapRuleDef(lint.RuleDef{
		ID: "strict",
		Options: func(raw []any) (any, error) {
			if len(raw) > 0 {
				return nil, fmt.Errorf("%w: no options accepted", lint.ErrInvalidOptions)
			}
			return nil, nil
		},
		Create: func(*lint.RuleContext) (lint.Handlers, error) {
			t.Fatal("rule with invalid options must not run")
			return nil, nil
		},
	})
	panicky := lint.WrapRuleDef(lint.RuleDef{
		ID:      "panicky",
		Options: func([]any) (any, error) { panic("bad resolver") },
	})

	cfg := lint.NewConfig()
	require.NoError(t, cfg.SetRule("strict", []any{"error", "extra"}))
	require.NoError(t, cfg.SetRule("ghost", "error"))
	_ = cfg.SetRule("loud", "shout")

	l := newLinter(t, cfg, strict, panicky)
	problems := l.ConfigProblems()
	require.Len(t, problems, 4)

	byRule := map[string]lint.Problem{}
	for _, p := range problems {
		assert.Equal(t, lint.ProblemConfig, p.Kind)
		byRule[p.RuleID] = p
	}
	assert.True(t, errors.Is(byRule["strict"].Err, lint.ErrInvalidOptions))
	assert.True(t, errors.Is(byRule["ghost"].Err, core.ErrUnknownRule))
	assert.True(t, errors.Is(byRule["loud"].Err, core.ErrInvalidSeverity))
	assert.True(t, errors.Is(byRule["panicky"].Err, lint.ErrInvalidOptions))

	assert.Empty(t, l.Activations())
	res := l.LintSource("cfg.js", "var a, b;")
	assert.Empty(t, res.Problems, "config problems are reported once, not per unit")
}

func TestLinter_Exclusive(t *testing.T) {
	var log []string
	cfg := lint.NewConfig().Exclusive()
	cfg.Enable("only")

	l := newLinter(t, cfg, tracer("other", &log, core.NodeProgram), tracer("only", &log, core.NodeProgram))
	require.Len(t, l.Activations(), 1)
	assert.Equal(t, "only", l.Activations()[0].ID())
	assert.Equal(t, core.SeverityError, l.Activations()[0].Severity)
}

func TestLinter_ParseProblem(t *testing.T) {
	l := newLinter(t, nil)
	res := l.LintSource("broken.js", "var = ;")

	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, lint.ProblemParse, res.Problems[0].Kind)
	assert.Equal(t, 1, res.Problems[0].Pos.Line)
	assert.True(t, res.HasProblems())
}

func TestLinter_OptionsReachContext(t *testing.T) {
	type opts struct{ Mode string }
	rule := lint.WrapRuleDef(lint.RuleDef{
		ID: "opts",
		Options: func(raw []any) (any, error) {
			mode := "always"
			if len(raw) > 0 {
				mode = raw[0].(string)
			}
			return opts{Mode: mode}, nil
		},
		Create: func(ctx *lint.RuleContext) (lint.Handlers, error) {
			o, ok := lint.OptionsAs[opts](ctx)
			if !ok {
				return nil, errors.New("unexpected options type")
			}
			return lint.Handlers{
				lint.On(core.NodeProgram): func(n *core.Node) error {
					ctx.Report(n, o.Mode)
					scope, err := ctx.Scope(nil)
					if err != nil {
						return err
					}
					assert.Equal(t, core.ScopeGlobal, scope.Kind)
					assert.Same(t, n, ctx.Node())
					assert.Empty(t, ctx.Ancestors())
					assert.Equal(t, "opts.js", ctx.Filename())
					return nil
				},
			}, nil
		},
	})

	cfg := lint.NewConfig()
	require.NoError(t, cfg.SetRule("opts", []any{"error", "never"}))
	res := newLinter(t, cfg, rule).LintSource("opts.js", "")

	require.Empty(t, res.Problems)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "never", res.Diagnostics[0].Message)
}

type countingRecorder struct {
	mu          sync.Mutex
	handlers    int
	diagnostics map[string]int
	problems    map[lint.ProblemKind]int
}

func (r *countingRecorder) ObserveHandler(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers++
}

func (r *countingRecorder) ObserveDiagnostic(id string, _ core.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics[id]++
}

func (r *countingRecorder) ObserveProblem(kind lint.ProblemKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.problems[kind]++
}

func TestLinter_Recorder(t *testing.T) {
	rec := &countingRecorder{diagnostics: map[string]int{}, problems: map[lint.ProblemKind]int{}}
	rule := testRule("every", func(ctx *lint.RuleContext) (lint.Handlers, error) {
		return lint.Handlers{
			lint.On(core.NodeVariableDeclaration): func(n *core.Node) error {
				ctx.Report(n, "x")
				return nil
			},
		}, nil
	})

	reg := lint.NewRegistry()
	reg.Add(rule)
	l := lint.New(nil, lint.WithRegistry(reg), lint.WithRecorder(rec))

	l.LintSource("a.js", "var a; var b;")
	l.LintSource("b.js", "var = ;")

	assert.Equal(t, 2, rec.handlers)
	assert.Equal(t, 2, rec.diagnostics["every"])
	assert.Equal(t, 1, rec.problems[lint.ProblemParse])
}

func TestProblem_String(t *testing.T) {
	p := lint.Problem{Kind: lint.ProblemConfig, RuleID: "one-var", Message: "bad"}
	assert.Equal(t, "config [one-var]: bad", p.String())

	p = lint.Problem{Kind: lint.ProblemParse, Filename: "a.js", Message: "oops"}
	assert.Equal(t, "a.js: parse: oops", p.String())
}
