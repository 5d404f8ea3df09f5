package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	"github.com/leapstack-labs/leaplint/pkg/core"
)

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"group", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	output, err := executeRules(t)
	require.NoError(t, err)

	// Piped output defaults to markdown
	assert.Contains(t, output, "# Lint Rules")
	assert.Contains(t, output, "## Style")
	assert.Contains(t, output, "- **one-var**")
	testutil.AssertValidMarkdown(t, output)
	testutil.AssertNoANSI(t, output)
}

func TestRulesCommand_Text(t *testing.T) {
	output, err := executeRules(t, "--format", "text", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, output, "Lint Rules (1)")
	assert.Contains(t, output, "Style")
	assert.Contains(t, output, "one-var")
	assert.Contains(t, output, "Options: var, let, const")
	assert.Contains(t, output, "leaplint rules <rule-id>")
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	output, err := executeRules(t, "--group", "style")
	require.NoError(t, err)
	assert.Contains(t, output, "one-var")

	output, err = executeRules(t, "--group", "possible-errors")
	require.NoError(t, err)
	assert.NotContains(t, output, "one-var")
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	output, err := executeRules(t, "one-var", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "one-var")
	assert.Contains(t, output, "Severity")
	assert.Contains(t, output, "Options: var, let, const")
	assert.Contains(t, output, "https://leaplint.dev/docs/rules/one-var")
}

func TestRulesCommand_NotFound(t *testing.T) {
	_, err := executeRules(t, "no-such-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_JSON(t *testing.T) {
	output, err := executeRules(t, "--format", "json")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 1, result.Count.Total)
	assert.Equal(t, 1, result.Count.ByGroup["style"])
	require.Len(t, result.Rules, 1)
	assert.Equal(t, "one-var", result.Rules[0].ID)
}

func TestRulesCommand_SingleRuleJSON(t *testing.T) {
	output, err := executeRules(t, "one-var", "--format", "json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "one-var", result["id"])
	assert.Equal(t, "error", result["default_severity"])
}

func TestRulesCommand_SingleRuleMarkdown(t *testing.T) {
	output, err := executeRules(t, "one-var", "--format", "markdown")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "# one-var"))
	assert.Contains(t, output, "```js")
	testutil.AssertValidMarkdown(t, output)
}

func TestFilterRulesByOptions(t *testing.T) {
	rules := []core.RuleInfo{
		{ID: "one-var", Group: "style"},
		{ID: "no-debugger", Group: "possible-errors"},
	}

	t.Run("no filter", func(t *testing.T) {
		assert.Equal(t, rules, filterRulesByOptions(rules, &RulesOptions{}))
	})

	t.Run("filter by group", func(t *testing.T) {
		result := filterRulesByOptions(rules, &RulesOptions{Group: "possible-errors"})
		require.Len(t, result, 1)
		assert.Equal(t, "no-debugger", result[0].ID)
	})
}

func TestTruncateOneLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"multiline", "hello\nworld", 20, "hello world"},
		{"multiline truncated", "hello\nworld", 8, "hello..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := truncateOneLine(tc.input, tc.maxLen)
			assert.Equal(t, tc.expected, result)
		})
	}
}
