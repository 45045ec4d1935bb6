package store

import (
	"coderag/internal/element"
)

// Hit is one search result: a stored document with its metadata and cosine
// similarity score (higher is more similar).
type Hit struct {
	ID       string
	Document string
	Metadata map[string]string
	Score    float64
}

// Store persists code elements with their embeddings and supports
// similarity search. Implementations must be safe for concurrent callers,
// but a search racing a clear may observe either the pre- or post-clear
// state.
type Store interface {
	// AddDocuments embeds and persists the elements. Re-adding an element
	// with an existing ID overwrites it (last write wins); duplicates never
	// accumulate. An empty slice is a no-op.
	AddDocuments(elems []element.CodeElement) error
	// ClearCollection deletes all records. On failure the prior state is
	// retained.
	ClearCollection() error
	// Search returns up to k records ranked by cosine similarity to the
	// query, ties broken by insertion order. An empty collection returns an
	// empty result, never an error.
	Search(query string, k int) ([]Hit, error)
	// GetMeta returns a collection metadata value, or "" if unset.
	GetMeta(key string) (string, error)
	// SetMeta sets a collection metadata key-value pair.
	SetMeta(key, value string) error
	// Close releases underlying resources.
	Close() error
}

// metadataFor builds the persisted metadata map for an element: the
// required keys plus any optional fields present.
func metadataFor(e element.CodeElement) map[string]string {
	md := map[string]string{
		"type":        string(e.Type),
		"file_path":   e.FilePath,
		"name":        e.Name,
		"description": e.Description,
		"line_range":  e.LineRange,
	}
	if e.Docstring != "" {
		md["docstring"] = e.Docstring
	}
	if e.ParentClass != "" {
		md["parent_class"] = e.ParentClass
	}
	return md
}
