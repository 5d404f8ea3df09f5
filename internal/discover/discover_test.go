package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
		require.NoError(t, os.WriteFile(p, []byte("var a;\n"), 0600))
	}
	return root
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestFiles(t *testing.T) {
	root := writeTree(t,
		"src/b.js",
		"src/a.cjs",
		"src/module.mjs",
		"src/lib/c.cjs",
		"src/readme.md",
		"node_modules/dep/index.js",
		".cache/x.js",
		"vendor/v.js",
	)

	t.Run("walks sources", func(t *testing.T) {
		files, err := Files([]string{root}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.cjs", "src/b.js", "src/lib/c.cjs", "vendor/v.js"}, rel(t, root, files))
	})

	t.Run("ignore patterns", func(t *testing.T) {
		files, err := Files([]string{root}, Options{Ignore: []string{"vendor/**", "c.cjs"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.cjs", "src/b.js"}, rel(t, root, files))
	})

	t.Run("recursive ignore", func(t *testing.T) {
		files, err := Files([]string{root}, Options{Ignore: []string{"src/**/*.cjs"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/b.js", "vendor/v.js"}, rel(t, root, files))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Files([]string{root}, Options{Ignore: []string{"src/[a"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid pattern "src/[a"`)
	})

	t.Run("include patterns", func(t *testing.T) {
		files, err := Files([]string{root}, Options{Include: []string{"lib/*.cjs", "a.cjs"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.cjs"}, rel(t, root, files))
	})

	t.Run("explicit file and duplicates", func(t *testing.T) {
		md := filepath.Join(root, "src", "readme.md")
		files, err := Files([]string{md, filepath.Join(root, "src"), md}, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/a.cjs", "src/b.js", "src/lib/c.cjs", "src/readme.md"}, rel(t, root, files))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Files([]string{filepath.Join(root, "nope")}, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMatch(t *testing.T) {
	tests := []struct {
		patterns []string
		path     string
		want     bool
	}{
		{[]string{"*.min.js"}, "dist/app.min.js", true},
		{[]string{"dist"}, "dist/app.js", true},
		{[]string{"dist/**"}, "dist/sub/app.js", true},
		{[]string{"dist/**"}, "src/dist.js", false},
		{[]string{"src/*.js"}, "src/a.js", true},
		{[]string{"src/*.js"}, "lib/a.js", false},
		{[]string{"src/*.js"}, "src/deep/a.js", false},
		{[]string{"src/**/*.js"}, "src/deep/a.js", true},
		{[]string{"./dist/"}, "dist/app.js", true},
		{[]string{"*.{min,bundle}.js"}, "out/app.bundle.js", true},
		{[]string{""}, "a.js", false},
		{nil, "a.js", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.patterns, tt.path), "Match(%v, %q)", tt.patterns, tt.path)
	}
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns([]string{"dist/**", "*.min.js", ""}))
	assert.Error(t, ValidatePatterns([]string{"ok/*", "bad["}))
}

func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("a.js"))
	assert.True(t, IsSource("A.JS"))
	assert.False(t, IsSource("a.mjs"))
	assert.True(t, IsSource("a.cjs"))
	assert.False(t, IsSource("a.ts"))
	assert.False(t, IsSource("js"))
}
