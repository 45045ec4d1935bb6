package extract

import (
	"strings"

	"coderag/internal/element"
)

// DefaultWindowLines is the line-count window for the chunking fallback.
const DefaultWindowLines = 100

// Chunk splits text into contiguous, non-overlapping windows of windowLines
// lines (the last window may be shorter) and returns one code_chunk element
// per window. Windows that are only whitespace are dropped; line ranges are
// absolute 1-based positions in the original file, so they stay correct
// even when earlier windows were dropped. No syntax awareness — this is the
// universal fallback for files without a usable grammar and for files where
// structural extraction found nothing.
func Chunk(path, text string, windowLines int) []element.CodeElement {
	if windowLines <= 0 {
		windowLines = DefaultWindowLines
	}
	lines := strings.Split(text, "\n")

	var elems []element.CodeElement
	for i := 0; i < len(lines); i += windowLines {
		end := i + windowLines
		if end > len(lines) {
			end = len(lines)
		}
		content := strings.Join(lines[i:end], "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		elems = append(elems, element.New(
			element.TypeChunk,
			"",
			content,
			path,
			element.LineRange(i+1, end),
		))
	}
	return elems
}
