// Package linttest runs table-driven rule tests.
//
// A suite lists valid snippets, which must lint clean, and invalid snippets
// with the exact diagnostics they must produce, in order:
//
//	valid:
//	  - "function foo() { var bar = true; }"
//	  - code: "function foo() { var bar = true; var baz = false; }"
//	    options: [never]
//	invalid:
//	  - code: "var foo; var bar;"
//	    errors:
//	      - message: "Combine this with the previous 'var' statement."
//	        type: VariableDeclaration
//	        line: 1
//	        column: 10
//
// Each case runs with only the rule under test activated.
package linttest

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Suite is a set of rule test cases.
type Suite struct {
	Valid   []Case `yaml:"valid"`
	Invalid []Case `yaml:"invalid"`
}

// Case is one snippet with the options to activate the rule with.
type Case struct {
	Name    string          `yaml:"name"`
	Code    string          `yaml:"code"`
	Options []any           `yaml:"options"`
	Errors  []ExpectedError `yaml:"errors"`
}

// UnmarshalYAML accepts a bare string as shorthand for {code: ...}.
func (c *Case) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Code = node.Value
		return nil
	}
	type plain Case
	return node.Decode((*plain)(c))
}

// ExpectedError describes one expected diagnostic. Zero Type, Line and
// Column are not checked.
type ExpectedError struct {
	Message string `yaml:"message"`
	Type    string `yaml:"type"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
}

// LoadSuite reads a YAML suite from path.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("read suite: %w", err)
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("parse suite %s: %w", path, err)
	}
	return s, nil
}

// Lint runs rule alone over code with the given options.
func Lint(rule lint.Rule, code string, options []any) (*lint.Result, []lint.Problem) {
	reg := lint.NewRegistry()
	reg.Add(rule)

	cfg := lint.NewConfig().Exclusive()
	cfg.Set(lint.RuleSetting{
		ID:          rule.ID(),
		Enabled:     true,
		Severity:    rule.DefaultSeverity(),
		HasSeverity: true,
		Options:     options,
	})

	l := lint.New(cfg, lint.WithRegistry(reg))
	return l.LintSource("test.js", code), l.ConfigProblems()
}

// Run executes every case of suite against rule as subtests.
func Run(t *testing.T, rule lint.Rule, suite Suite) {
	t.Helper()

	for i, c := range suite.Valid {
		t.Run(caseName("valid", i, c), func(t *testing.T) {
			res, problems := Lint(rule, c.Code, c.Options)
			require.Empty(t, problems, "configuration problems")
			require.Empty(t, res.Problems, "run problems")
			assert.Empty(t, res.Diagnostics, "code: %s", c.Code)
		})
	}

	for i, c := range suite.Invalid {
		t.Run(caseName("invalid", i, c), func(t *testing.T) {
			require.NotEmpty(t, c.Errors, "invalid case must list its errors")

			res, problems := Lint(rule, c.Code, c.Options)
			require.Empty(t, problems, "configuration problems")
			require.Empty(t, res.Problems, "run problems")
			require.Len(t, res.Diagnostics, len(c.Errors), "code: %s", c.Code)

			for j, want := range c.Errors {
				got := res.Diagnostics[j]
				assert.Equal(t, rule.ID(), got.RuleID)
				assert.Equal(t, want.Message, got.Message, "error %d", j)
				if want.Type != "" {
					assert.Equal(t, want.Type, string(got.NodeType), "error %d type", j)
				}
				if want.Line != 0 {
					assert.Equal(t, want.Line, got.Pos.Line, "error %d line", j)
				}
				if want.Column != 0 {
					assert.Equal(t, want.Column, got.Pos.Column, "error %d column", j)
				}
			}
		})
	}
}

func caseName(prefix string, i int, c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s_%d", prefix, i)
}
