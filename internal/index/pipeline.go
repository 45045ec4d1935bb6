package index

import (
	"encoding/json"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"coderag/internal/element"
	"coderag/internal/extract"
	"coderag/internal/lang"
)

// Stats reports indexing results.
type Stats struct {
	FilesTotal     int
	FilesExtracted int
	FilesChunked   int
	FilesFailed    int
	Elements       int
}

// Pipeline turns files into code elements: resolve language, run structural
// extraction, and fall back to line chunking when no grammar or query
// applies or extraction finds nothing. It is stateless between files apart
// from the registry's grammar cache.
type Pipeline struct {
	extractor   *extract.Extractor
	windowLines int
	workers     int
	logger      *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWindowLines sets the fallback chunk window size.
func WithWindowLines(n int) Option {
	return func(p *Pipeline) { p.windowLines = n }
}

// WithWorkers sets the number of parallel workers used by Index.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline backed by the given registry.
func New(registry *lang.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   extract.NewExtractor(registry),
		windowLines: extract.DefaultWindowLines,
		workers:     runtime.NumCPU(),
		logger:      log.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessFile reads and processes a single file. An unreadable file
// contributes zero elements and a diagnostic; it never aborts a batch.
func (p *Pipeline) ProcessFile(path string) []element.CodeElement {
	src, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("skipping unreadable file", "path", path, "err", err)
		return nil
	}
	return p.ProcessContent(path, src)
}

// ProcessContent processes file content already in memory.
func (p *Pipeline) ProcessContent(path string, src []byte) []element.CodeElement {
	if id, ok := lang.Resolve(path); ok {
		elems, outcome := p.extractor.Extract(path, src, id)
		if outcome == extract.OutcomeOK {
			return elems
		}
		p.logger.Debug("structural extraction unavailable, chunking",
			"path", path, "language", id, "reason", outcome)
	}
	return extract.Chunk(path, string(src), p.windowLines)
}

// Index processes the given files in parallel and returns their elements in
// input file order. Per-file failures are isolated.
func (p *Pipeline) Index(paths []string) ([]element.CodeElement, *Stats) {
	results := make([][]element.CodeElement, len(paths))
	extracted := make([]bool, len(paths))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			elems := p.ProcessFile(path)
			results[i] = elems
			extracted[i] = len(elems) > 0 && elems[0].Type != element.TypeChunk
			return nil
		})
	}
	// Workers never return errors; failures degrade to empty per-file results.
	_ = g.Wait()

	stats := &Stats{FilesTotal: len(paths)}
	var all []element.CodeElement
	for i, elems := range results {
		switch {
		case len(elems) == 0:
			stats.FilesFailed++
		case extracted[i]:
			stats.FilesExtracted++
		default:
			stats.FilesChunked++
		}
		stats.Elements += len(elems)
		all = append(all, elems...)
	}
	return all, stats
}

// WriteJSON serializes elements as a JSON array with the wire field names.
func WriteJSON(w io.Writer, elems []element.CodeElement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(elems)
}
