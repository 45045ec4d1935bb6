package index

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/element"
	"coderag/internal/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessContentExtractsKnownLanguage(t *testing.T) {
	p := New(lang.NewDefault())

	src := "def add(a, b): return a+b"
	elems := p.ProcessContent("calc.py", []byte(src))
	require.Len(t, elems, 1)
	assert.Equal(t, element.TypeFunction, elems[0].Type)
	assert.Equal(t, "add", elems[0].Name)
}

func TestProcessContentFallsBackToChunking(t *testing.T) {
	p := New(lang.NewDefault())

	// Unmapped extension: chunking.
	elems := p.ProcessContent("notes.txt", []byte("some\nplain\ntext"))
	require.Len(t, elems, 1)
	assert.Equal(t, element.TypeChunk, elems[0].Type)

	// Mapped language without a grammar: chunking.
	elems = p.ProcessContent("config.yaml", []byte("key: value"))
	require.Len(t, elems, 1)
	assert.Equal(t, element.TypeChunk, elems[0].Type)

	// Known language but no definitions found: chunking.
	elems = p.ProcessContent("empty.py", []byte("# just a comment"))
	require.Len(t, elems, 1)
	assert.Equal(t, element.TypeChunk, elems[0].Type)
}

func TestIndexPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "def alpha(): pass")
	b := writeFile(t, dir, "b.py", "def beta(): pass")
	c := writeFile(t, dir, "c.py", "def gamma(): pass")

	p := New(lang.NewDefault(), WithWorkers(4))
	elems, stats := p.Index([]string{c, a, b})

	require.Len(t, elems, 3)
	assert.Equal(t, "gamma", elems[0].Name)
	assert.Equal(t, "alpha", elems[1].Name)
	assert.Equal(t, "beta", elems[2].Name)
	assert.Equal(t, 3, stats.FilesTotal)
	assert.Equal(t, 3, stats.FilesExtracted)
}

func TestIndexIsolatesFailingFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.py", "def ok(): pass")
	missing := filepath.Join(dir, "missing.py")

	p := New(lang.NewDefault())
	elems, stats := p.Index([]string{missing, good})

	require.Len(t, elems, 1, "one unreadable file must not stop the batch")
	assert.Equal(t, "ok", elems[0].Name)
	assert.Equal(t, 1, stats.FilesFailed)
	assert.Equal(t, 1, stats.FilesExtracted)
}

func TestIndexTraceability(t *testing.T) {
	dir := t.TempDir()
	src := `import os

def main():
    print(os.getcwd())
`
	path := writeFile(t, dir, "app.py", src)

	p := New(lang.NewDefault())
	elems, _ := p.Index([]string{path})
	require.NotEmpty(t, elems)
	for _, el := range elems {
		assert.Contains(t, src, el.Code,
			"element code must be a verbatim substring of the source")
	}
}

func TestWriteJSONFieldNames(t *testing.T) {
	p := New(lang.NewDefault())
	elems := p.ProcessContent("calc.py", []byte("def add(a, b): return a+b"))
	require.Len(t, elems, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, elems))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)

	for _, field := range []string{"id", "type", "name", "code", "file_path", "line_range", "description"} {
		assert.Contains(t, decoded[0], field)
	}
	assert.Equal(t, "function", decoded[0]["type"])
	assert.Equal(t, "1-1", decoded[0]["line_range"])
}

func TestProcessFileChunksLargePlainFile(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("x\n", 250)
	path := writeFile(t, dir, "data.txt", content)

	p := New(lang.NewDefault(), WithWindowLines(100))
	elems := p.ProcessFile(path)
	require.Len(t, elems, 3)
	assert.Equal(t, "1-100", elems[0].LineRange)
	assert.Equal(t, "201-251", elems[2].LineRange)
}
