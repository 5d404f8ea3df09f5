package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	"github.com/leapstack-labs/leaplint/internal/discover"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// setupLintProject creates the test project and loads its config file.
func setupLintProject(t *testing.T) string {
	t.Helper()
	dir := testutil.SetupTestProject(t)
	_, err := config.LoadConfigFrom(dir, "", nil)
	require.NoError(t, err)
	t.Cleanup(config.ResetConfig)
	return dir
}

func executeLint(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewLintCommand()
	cmd.SilenceUsage = true // mirrors the root command's setting
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeLintOutput(t *testing.T, s string) output.LintOutput {
	t.Helper()
	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(s), &out), s)
	return out
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{
		"format", "rule", "disable", "only", "severity", "max-warnings", "jobs",
		"strict-config", "timing", "metrics-file", "watch", "ignore", "stdin", "stdin-filename",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("file settings", func(t *testing.T) {
		cfg := &config.Config{Lint: &config.LintConfig{
			Rules:    map[string]any{"one-var": []any{"warn", "never"}},
			Disabled: []string{"legacy"},
		}}
		lintCfg, err := buildLintConfig(cfg, &LintOptions{})
		require.NoError(t, err)

		assert.True(t, lintCfg.IsDisabled("legacy"))
		assert.Equal(t, core.SeverityWarning, lintCfg.GetSeverity("one-var", core.SeverityError))
		assert.Equal(t, []any{"never"}, lintCfg.GetRuleOptions("one-var"))
	})

	t.Run("rule flag overrides file", func(t *testing.T) {
		cfg := &config.Config{Lint: &config.LintConfig{
			Rules: map[string]any{"one-var": "warn"},
		}}
		lintCfg, err := buildLintConfig(cfg, &LintOptions{
			Rules: []string{"one-var: [error, {var: never}]"},
		})
		require.NoError(t, err)

		assert.Equal(t, core.SeverityError, lintCfg.GetSeverity("one-var", core.SeverityHint))
		opts := lintCfg.GetRuleOptions("one-var")
		require.Len(t, opts, 1)
		assert.Equal(t, map[string]any{"var": "never"}, opts[0])
	})

	t.Run("disable and only", func(t *testing.T) {
		lintCfg, err := buildLintConfig(config.Default(), &LintOptions{
			Disable: []string{" one-var ", ""},
			Only:    true,
		})
		require.NoError(t, err)

		assert.True(t, lintCfg.IsDisabled("one-var"))
		assert.True(t, lintCfg.IsExclusive())
		assert.True(t, lintCfg.IsDisabled("anything-else"))
	})

	t.Run("invalid setting becomes config error", func(t *testing.T) {
		lintCfg, err := buildLintConfig(config.Default(), &LintOptions{
			Rules: []string{"one-var: loud"},
		})
		require.NoError(t, err)
		require.Len(t, lintCfg.Errors(), 1)
		assert.Equal(t, "one-var", lintCfg.Errors()[0].RuleID)
	})

	t.Run("malformed flag", func(t *testing.T) {
		_, err := buildLintConfig(config.Default(), &LintOptions{Rules: []string{"one-var"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --rule")
	})
}

func TestParseRuleFlag(t *testing.T) {
	settings, err := parseRuleFlag("one-var: 2")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"one-var": 2}, settings)

	_, err = parseRuleFlag("")
	require.Error(t, err)

	_, err = parseRuleFlag("one-var: [error")
	require.Error(t, err)
}

func TestFilterBySeverity(t *testing.T) {
	results := []*lint.Result{
		{
			Filename: "test.js",
			Diagnostics: []lint.Diagnostic{
				{RuleID: "one-var", Severity: core.SeverityError, Message: "error"},
				{RuleID: "one-var", Severity: core.SeverityWarning, Message: "warning"},
				{RuleID: "one-var", Severity: core.SeverityHint, Message: "hint"},
			},
			Problems: []lint.Problem{{Kind: lint.ProblemCrash, RuleID: "boom"}},
		},
	}

	t.Run("error threshold", func(t *testing.T) {
		filtered := filterBySeverity(results, core.SeverityError)
		require.Len(t, filtered, 1)
		assert.Len(t, filtered[0].Diagnostics, 1)
		assert.Equal(t, core.SeverityError, filtered[0].Diagnostics[0].Severity)
		assert.Len(t, filtered[0].Problems, 1, "problems are never filtered")
	})

	t.Run("warning threshold", func(t *testing.T) {
		filtered := filterBySeverity(results, core.SeverityWarning)
		assert.Len(t, filtered[0].Diagnostics, 2)
	})

	t.Run("hint threshold", func(t *testing.T) {
		filtered := filterBySeverity(results, core.SeverityHint)
		assert.Len(t, filtered[0].Diagnostics, 3)
	})
}

func TestSeverityStyle(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	assert.Equal(t, "error  ", severityStyle(tr.Renderer, core.SeverityError))
	assert.Equal(t, "warning", severityStyle(tr.Renderer, core.SeverityWarning))
	assert.Equal(t, "info   ", severityStyle(tr.Renderer, core.SeverityInfo))
	assert.Equal(t, "hint   ", severityStyle(tr.Renderer, core.SeverityHint))
}

func TestLintCommand_ReportsViolations(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "json")
	require.ErrorIs(t, err, ErrLintFailed)

	result := decodeLintOutput(t, out)
	assert.Equal(t, 2, result.Summary.FilesAnalyzed, "node_modules is skipped")
	assert.Equal(t, 1, result.Summary.Errors)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "src", "bad.js"), result.Files[0].Path)

	require.Len(t, result.Files[0].Diagnostics, 1)
	d := result.Files[0].Diagnostics[0]
	assert.Equal(t, "one-var", d.RuleID)
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, "Combine this with the previous 'var' statement.", d.Message)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, 1, d.Column)
	assert.Equal(t, "VariableDeclaration", d.NodeType)
}

func TestLintCommand_NeverMode(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "json",
		"--rule", "one-var: [error, never]")
	require.ErrorIs(t, err, ErrLintFailed)

	result := decodeLintOutput(t, out)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "src", "good.js"), result.Files[0].Path)
	assert.Equal(t, "Split 'var' declaration into multiple statements.", result.Files[0].Diagnostics[0].Message)
}

func TestLintCommand_Clean(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src", "good.js"), "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
}

func TestLintCommand_MaxWarnings(t *testing.T) {
	dir := setupLintProject(t)
	src := filepath.Join(dir, "src")

	out, err := executeLint(t, "", src, "--format", "markdown", "--rule", "one-var: warn", "--max-warnings", "0")
	require.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, err.Error(), "too many warnings (1, maximum 0)")
	assert.Contains(t, out, "Summary: 1 issues, 1 warnings in 2 files")

	_, err = executeLint(t, "", src, "--format", "markdown", "--rule", "one-var: warn", "--max-warnings", "1")
	require.NoError(t, err)
}

func TestLintCommand_SeverityThreshold(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "markdown",
		"--rule", "one-var: warn", "--severity", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestLintCommand_InvalidSeverity(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "json", "--severity", "loud")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, err.Error(), `invalid --severity "loud"`)
	assert.Empty(t, out, "nothing is linted")
}

func TestLintCommand_SeverityAlias(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "json",
		"--rule", "one-var: warn", "--severity", "warn", "--max-warnings", "0")
	require.ErrorIs(t, err, ErrLintFailed)

	result := decodeLintOutput(t, out)
	assert.Equal(t, 1, result.Summary.Warnings)
}

func TestLintCommand_Stdin(t *testing.T) {
	out, err := executeLint(t, "let a; let b;\n", "--stdin", "--stdin-filename", "app.js", "--format", "markdown")
	require.ErrorIs(t, err, ErrLintFailed)

	assert.Contains(t, out, "app.js")
	assert.Contains(t, out, "1:8")
	assert.Contains(t, out, "Combine this with the previous 'let' statement.")
}

func TestLintCommand_StdinParseProblem(t *testing.T) {
	out, err := executeLint(t, "var = ;", "--stdin", "--format", "json")
	require.ErrorIs(t, err, ErrLintFailed)

	result := decodeLintOutput(t, out)
	assert.Equal(t, 1, result.Summary.Problems)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, "parse", result.Problems[0].Kind)
	assert.Equal(t, "<stdin>", result.Problems[0].File)
}

func TestLintCommand_StdinAndWatch(t *testing.T) {
	_, err := executeLint(t, "", "--stdin", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestLintCommand_ConfigProblems(t *testing.T) {
	dir := setupLintProject(t)
	good := filepath.Join(dir, "src", "good.js")

	t.Run("reported", func(t *testing.T) {
		out, err := executeLint(t, "", good, "--format", "json", "--rule", "one-var: [error, sometimes]")
		require.ErrorIs(t, err, ErrLintFailed)

		result := decodeLintOutput(t, out)
		require.Len(t, result.Problems, 1)
		assert.Equal(t, "config", result.Problems[0].Kind)
		assert.Equal(t, "one-var", result.Problems[0].RuleID)
	})

	t.Run("strict", func(t *testing.T) {
		_, err := executeLint(t, "", good, "--format", "json", "--strict-config", "--rule", "one-var: [error, sometimes]")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestLintCommand_TimingAndMetrics(t *testing.T) {
	dir := setupLintProject(t)
	metricsFile := filepath.Join(t.TempDir(), "leaplint.prom")

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "markdown",
		"--timing", "--metrics-file", metricsFile, "--jobs", "2")
	require.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, out, "| Rule | Calls | Time (ms) | Relative |")
	assert.Contains(t, out, "| one-var |")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `leaplint_files_total{status="clean"} 1`)
	assert.Contains(t, string(data), `leaplint_files_total{status="failed"} 1`)
	assert.Contains(t, string(data), `leaplint_diagnostics_total{rule_id="one-var",severity="error"} 1`)
}

func TestLintCommand_Ignore(t *testing.T) {
	dir := setupLintProject(t)

	out, err := executeLint(t, "", filepath.Join(dir, "src"), "--format", "markdown", "--ignore", "bad.js")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
}

func TestLintCommand_NoFiles(t *testing.T) {
	_, err := executeLint(t, "", t.TempDir(), "--format", "json")
	require.ErrorIs(t, err, discover.ErrNoFiles)
}
