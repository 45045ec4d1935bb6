package rag

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"coderag/internal/lang"
	"coderag/internal/store"
)

// NoContextSentinel is returned when retrieval finds nothing, so callers can
// distinguish "nothing found" from "found but empty".
const NoContextSentinel = "No relevant code context found."

// Candidates are over-provisioned beyond the file limit to leave room for
// per-file grouping and dedup.
const (
	oversampleFactor = 4
	minCandidates    = 20
)

// defaultNonDefaultLanguages are preferred in the diversity pass when no
// set is configured.
var defaultNonDefaultLanguages = []lang.ID{lang.Java, lang.JavaScript, lang.TypeScript}

// Assembler turns a query into a bounded, deduplicated, diversity-aware
// context block.
type Assembler struct {
	store      store.Store
	nonDefault map[lang.ID]bool
	logger     *log.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithNonDefaultLanguages overrides the language set given priority in the
// diversity pass.
func WithNonDefaultLanguages(ids []lang.ID) AssemblerOption {
	return func(a *Assembler) {
		a.nonDefault = make(map[lang.ID]bool, len(ids))
		for _, id := range ids {
			a.nonDefault[id] = true
		}
	}
}

// WithAssemblerLogger sets the diagnostic logger.
func WithAssemblerLogger(l *log.Logger) AssemblerOption {
	return func(a *Assembler) { a.logger = l }
}

// NewAssembler creates an assembler reading from the given store.
func NewAssembler(st store.Store, opts ...AssemblerOption) *Assembler {
	a := &Assembler{store: st, logger: log.Default()}
	WithNonDefaultLanguages(defaultNonDefaultLanguages)(a)
	for _, o := range opts {
		o(a)
	}
	return a
}

// fileGroup holds the accepted chunks for one file, in retrieval order.
type fileGroup struct {
	path   string
	chunks []string
}

// BuildContext retrieves candidates for the query and assembles up to
// fileLimit files into one labeled context block. A store failure or an
// empty result degrades to the sentinel, never an error.
func (a *Assembler) BuildContext(query string, fileLimit int) string {
	if fileLimit <= 0 {
		fileLimit = 1
	}
	k := fileLimit * oversampleFactor
	if k < minCandidates {
		k = minCandidates
	}

	hits, err := a.store.Search(query, k)
	if err != nil {
		a.logger.Warn("context search failed", "err", err)
		return NoContextSentinel
	}
	if len(hits) == 0 {
		return NoContextSentinel
	}

	groups := groupByFile(hits)
	selected := selectFiles(groups, fileLimit, a.nonDefault)
	if len(selected) == 0 {
		return NoContextSentinel
	}

	var b strings.Builder
	for i, g := range selected {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- File: %s ---\n", filepath.Base(g.path))
		b.WriteString(strings.Join(g.chunks, "\n"))
	}
	return b.String()
}

// groupByFile groups hits by file path in first-encounter order, dropping a
// chunk whose text is already contained in previously accepted content from
// the same file.
func groupByFile(hits []store.Hit) []*fileGroup {
	var order []*fileGroup
	byPath := make(map[string]*fileGroup)
	for _, h := range hits {
		path := h.Metadata["file_path"]
		if path == "" {
			continue
		}
		g, ok := byPath[path]
		if !ok {
			g = &fileGroup{path: path}
			byPath[path] = g
			order = append(order, g)
		}
		if strings.Contains(strings.Join(g.chunks, "\n"), h.Document) {
			continue
		}
		g.chunks = append(g.chunks, h.Document)
	}
	return order
}

// selectFiles picks up to limit files in two passes: first files in a
// non-default language (guaranteeing cross-language representation), then
// any remaining group in encounter order. Selection is monotonic — once the
// limit is reached no further file is added.
func selectFiles(groups []*fileGroup, limit int, nonDefault map[lang.ID]bool) []*fileGroup {
	selected := make([]*fileGroup, 0, limit)
	included := make(map[string]bool)

	for _, g := range groups {
		if len(selected) >= limit {
			break
		}
		if id, ok := lang.Resolve(g.path); ok && nonDefault[id] {
			selected = append(selected, g)
			included[g.path] = true
		}
	}
	for _, g := range groups {
		if len(selected) >= limit {
			break
		}
		if !included[g.path] {
			selected = append(selected, g)
			included[g.path] = true
		}
	}
	return selected
}
