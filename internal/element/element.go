package element

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// Type classifies a code element.
type Type string

const (
	TypeImports  Type = "imports"
	TypeClass    Type = "class"
	TypeFunction Type = "function"
	TypeChunk    Type = "code_chunk"
)

// Sentinel values for fields the extractor could not resolve.
const (
	UnknownName = "Unknown"
	NoDocstring = "No documentation"
)

// CodeElement is one discovered unit of code: a function, a class, an
// import block, or a fallback text chunk. Elements are immutable once
// created; Code is always a verbatim substring of the source file.
type CodeElement struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Name        string `json:"name,omitempty"`
	Code        string `json:"code"`
	FilePath    string `json:"file_path"`
	LineRange   string `json:"line_range"`
	Docstring   string `json:"docstring,omitempty"`
	ParentClass string `json:"parent_class,omitempty"`
	Description string `json:"description"`
}

// New creates an element with a fresh unique ID and a synthesized
// description.
func New(t Type, name, code, filePath, lineRange string) CodeElement {
	return CodeElement{
		ID:          uuid.NewString(),
		Type:        t,
		Name:        name,
		Code:        code,
		FilePath:    filePath,
		LineRange:   lineRange,
		Description: Describe(t, name, "", filePath, lineRange),
	}
}

// Describe synthesizes the one-line summary used as the text prepended to
// embeddings.
func Describe(t Type, name, parentClass, filePath, lineRange string) string {
	base := filepath.Base(filePath)
	switch t {
	case TypeImports:
		return fmt.Sprintf("Import statements from %s", base)
	case TypeClass:
		return fmt.Sprintf("Class %s from %s", name, base)
	case TypeFunction:
		if parentClass != "" {
			return fmt.Sprintf("Method %s from %s", name, base)
		}
		return fmt.Sprintf("Function %s from %s", name, base)
	default:
		return fmt.Sprintf("Code chunk (lines %s) from %s", lineRange, base)
	}
}

// EmbeddingText is the text embedded and stored for the element.
func (e CodeElement) EmbeddingText() string {
	return e.Description + "\n" + e.Code
}

// LineRange formats a 1-based inclusive line span.
func LineRange(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}
