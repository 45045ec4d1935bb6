package index

import (
	"fmt"

	"coderag/internal/element"
	"coderag/internal/store"
)

// Save replaces the collection contents with elems and records the embedding
// model used. An index run is a full snapshot of the tree, so prior records
// are cleared first; re-running over an unchanged tree leaves the store the
// same size instead of accumulating a copy per run.
func Save(st store.Store, elems []element.CodeElement, embedModel string) error {
	if err := st.ClearCollection(); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	if err := st.AddDocuments(elems); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	if err := st.SetMeta("embedding_model", embedModel); err != nil {
		return fmt.Errorf("set meta: %w", err)
	}
	return nil
}
