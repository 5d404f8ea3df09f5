package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"text":     ModeText,
		"Markdown": ModeMarkdown,
		"md":       ModeMarkdown,
		" json ":   ModeJSON,
		"auto":     ModeAuto,
		"":         ModeAuto,
		"xml":      ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), "Mode(%q)", in)
	}
}

func TestEffectiveMode(t *testing.T) {
	r, _, _ := newTest(ModeAuto, true)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTest(ModeAuto, false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r, _, _ = newTest(ModeJSON, true)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
}

func TestNewRenderer_NonFileIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader_Markdown(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Header(1, "Lint Results")
	r.Header(2, "src/a.js")

	assert.Equal(t, "# Lint Results\n\n## src/a.js\n\n", out.String())
}

func TestStyles_NoANSIWhenPiped(t *testing.T) {
	r, out, errOut := newTest(ModeText, false)
	r.Println(r.Styles().Error.Render("error"))
	r.Success("done")
	r.Warning("careful")

	assert.Equal(t, "error\n✓ done\n", out.String())
	assert.Equal(t, "warning: careful\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestJSON(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(LintSummary{FilesAnalyzed: 2, Errors: 1}))

	assert.Contains(t, out.String(), `"files_analyzed": 2`)
	assert.Contains(t, out.String(), `"errors": 1`)
}

func TestTable(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTest(ModeMarkdown, false)
		r.Table([]string{"Rule", "Calls"}, [][]any{{"one-var", 3}})

		assert.Contains(t, out.String(), "| Rule | Calls |")
		assert.Contains(t, out.String(), "| one-var | 3 |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTest(ModeText, false)
		r.Table([]string{"Rule", "Calls"}, [][]any{{"one-var", 3}})

		assert.Contains(t, out.String(), "RULE")
		assert.Contains(t, out.String(), "one-var")
		assert.True(t, strings.HasPrefix(out.String(), "┌"))
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "### x", FormatHeader(3, "x"))
	assert.Equal(t, "# x", FormatHeader(0, "x"))
	assert.Equal(t, "- **Rule:** one-var", FormatKeyValue("Rule", "one-var"))
	assert.Equal(t, "Possible Errors", Title("possible-errors"))
	assert.Equal(t, "Style", Title("style"))
}
