package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedent(t *testing.T) {
	in := "  # Lint\n  leaplint lint\n\n    leaplint lint src\n"
	assert.Equal(t, "# Lint\nleaplint lint\n\n  leaplint lint src", dedent(in))
}

func TestEnvRows(t *testing.T) {
	rows := envRows()
	var names []string
	for _, r := range rows {
		names = append(names, r[0])
	}
	assert.Contains(t, names, "`LEAPLINT_LOG_LEVEL`")
	assert.Contains(t, names, "`LEAPLINT_MAX_WARNINGS`")
	assert.NotContains(t, names, "`LEAPLINT_LINT.RULES`")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`lint`](/cli/lint)")
	assert.Contains(t, string(index), "## Rule Settings")

	page, err := os.ReadFile(filepath.Join(dir, "lint.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# leaplint lint")
	assert.Contains(t, string(page), "`--severity`")
}
