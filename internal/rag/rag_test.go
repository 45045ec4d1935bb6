package rag

import (
	"hash/fnv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/index"
	"coderag/internal/lang"
	"coderag/internal/store"
)

// tokenEmbedder is a deterministic bag-of-words embedder so retrieval
// ranking in tests depends only on shared vocabulary.
type tokenEmbedder struct{}

func (tokenEmbedder) EmbedSingle(text string) ([]float32, error) {
	const dim = 64
	v := make([]float32, dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		v[h.Sum32()%dim]++
	}
	return v, nil
}

func (e tokenEmbedder) Embed(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.EmbedSingle(t)
	}
	return out, nil
}

func TestIndexThenRetrieve(t *testing.T) {
	p := index.New(lang.NewDefault())
	elems := p.ProcessContent("calc.py", []byte("def add(a, b): return a+b\n"))
	require.NotEmpty(t, elems)
	extra := p.ProcessContent("io.py", []byte("def read_file(path): return open(path).read()\n"))
	elems = append(elems, extra...)

	st, err := store.OpenLocal(t.TempDir(), "e2e", tokenEmbedder{})
	require.NoError(t, err)
	require.NoError(t, st.AddDocuments(elems))

	hits, err := st.Search("Function add from calc.py", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "calc.py", hits[0].Metadata["file_path"])
	assert.Equal(t, "add", hits[0].Metadata["name"])
	assert.Equal(t, "1-1", hits[0].Metadata["line_range"])

	ctx := NewAssembler(st).BuildContext("Function add from calc.py", 5)
	assert.Contains(t, ctx, "--- File: calc.py ---")
	assert.Contains(t, ctx, "def add(a, b): return a+b")
}
