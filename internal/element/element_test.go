package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name        string
		typ         Type
		elemName    string
		parentClass string
		want        string
	}{
		{"function", TypeFunction, "add", "", "Function add from calc.py"},
		{"method", TypeFunction, "add", "Calc", "Method add from calc.py"},
		{"class", TypeClass, "Calc", "", "Class Calc from calc.py"},
		{"imports", TypeImports, "", "", "Import statements from calc.py"},
		{"chunk", TypeChunk, "", "", "Code chunk (lines 1-100) from calc.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.typ, tt.elemName, tt.parentClass, "src/deep/calc.py", "1-100")
			assert.Equal(t, tt.want, got, "descriptions use the base file name")
		})
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(TypeFunction, "f", "def f(): pass", "a.py", "1-1")
	b := New(TypeFunction, "f", "def f(): pass", "a.py", "1-1")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestEmbeddingText(t *testing.T) {
	e := New(TypeFunction, "add", "def add(a, b): return a+b", "calc.py", "1-1")
	assert.Equal(t, "Function add from calc.py\ndef add(a, b): return a+b", e.EmbeddingText())
}

func TestLineRange(t *testing.T) {
	assert.Equal(t, "1-1", LineRange(1, 1))
	assert.Equal(t, "101-150", LineRange(101, 150))
}
