package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestCollectSkipsDefaultIgnores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "def main(): pass\n")
	writeFile(t, root, "lib/util.go", "package lib\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, "__pycache__/main.cpython-312.pyc", "binary\n")

	paths, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.go", "main.py"}, relPaths(t, root, paths))
}

func TestCollectSkipsEmptyAndOversized(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.py", "")
	writeFile(t, root, "big.py", strings.Repeat("x", maxFileSize+1))
	writeFile(t, root, "ok.py", "def f(): pass\n")

	paths, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.py"}, relPaths(t, root, paths))
}

func TestCollectIncludesUnrecognizedExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "some notes\n")
	writeFile(t, root, "data.csv", "a,b\n1,2\n")

	paths, err := Collect(root)
	require.NoError(t, err)
	assert.Len(t, paths, 2, "extension filtering is the pipeline's job, not the walker's")
}

func TestCollectHonorsIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, IgnoreFile, "# generated code\ngenerated\n*.min.js\n")
	writeFile(t, root, "app.js", "console.log(1)\n")
	writeFile(t, root, "app.min.js", "console.log(1)\n")
	writeFile(t, root, "generated/schema.go", "package generated\n")

	paths, err := Collect(root)
	require.NoError(t, err)
	rel := relPaths(t, root, paths)
	assert.Contains(t, rel, "app.js")
	assert.NotContains(t, rel, "app.min.js")
	assert.NotContains(t, rel, "generated/schema.go")
	assert.NotContains(t, rel, IgnoreFile, "the ignore file itself is never indexed")
}

func TestCollectSortedOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.py", "z = 1\n")
	writeFile(t, root, "a.py", "a = 1\n")
	writeFile(t, root, "m/b.py", "b = 1\n")

	paths, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "m/b.py", "z.py"}, relPaths(t, root, paths))
}
