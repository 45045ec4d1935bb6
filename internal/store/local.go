package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"coderag/internal/element"
	"coderag/internal/embedder"
)

// embedBatchSize bounds peak memory when embedding large add batches.
const embedBatchSize = 32

// document is the persisted text+metadata half of a record.
type document struct {
	ID       string            `json:"id"`
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata"`
}

// collectionFile is the on-disk layout of a local collection. The format is
// an implementation detail of this backend, not a wire format.
type collectionFile struct {
	Documents  []document        `json:"documents"`
	Embeddings [][]float32       `json:"embeddings"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// LocalStore is the in-process reference Store: brute-force cosine
// similarity over records held in memory, persisted as a single JSON file
// per collection under the configured directory.
type LocalStore struct {
	mu       sync.RWMutex
	embedder embedder.Embedder
	path     string

	docs    []document
	vectors [][]float32
	byID    map[string]int // id → index into docs/vectors
	meta    map[string]string
}

// OpenLocal opens (or creates) a local collection under dir, reloading any
// records written before the last process exit.
func OpenLocal(dir, collection string, emb embedder.Embedder) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	s := &LocalStore{
		embedder: emb,
		path:     filepath.Join(dir, collection+".json"),
		byID:     make(map[string]int),
		meta:     make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read collection: %w", err)
	}
	var f collectionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	if len(f.Documents) != len(f.Embeddings) {
		return fmt.Errorf("corrupt collection: %d documents, %d embeddings",
			len(f.Documents), len(f.Embeddings))
	}
	s.docs = f.Documents
	s.vectors = f.Embeddings
	for i, d := range f.Documents {
		s.byID[d.ID] = i
	}
	if f.Meta != nil {
		s.meta = f.Meta
	}
	return nil
}

// save writes the collection atomically: temp file then rename, so readers
// after a crash see either the old or the new state.
func (s *LocalStore) save() error {
	f := collectionFile{
		Documents:  s.docs,
		Embeddings: s.vectors,
		Meta:       s.meta,
	}
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}

func (s *LocalStore) AddDocuments(elems []element.CodeElement) error {
	if len(elems) == 0 {
		return nil
	}

	texts := make([]string, len(elems))
	for i, e := range elems {
		texts[i] = e.EmbeddingText()
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.Embed(texts[i:end])
		if err != nil {
			return fmt.Errorf("embed batch: %w", err)
		}
		vectors = append(vectors, batch...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range elems {
		d := document{ID: e.ID, Document: texts[i], Metadata: metadataFor(e)}
		if at, ok := s.byID[e.ID]; ok {
			// Last write wins, insertion position preserved.
			s.docs[at] = d
			s.vectors[at] = vectors[i]
			continue
		}
		s.byID[e.ID] = len(s.docs)
		s.docs = append(s.docs, d)
		s.vectors = append(s.vectors, vectors[i])
	}
	return s.save()
}

func (s *LocalStore) ClearCollection() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear collection: %w", err)
	}
	s.docs = nil
	s.vectors = nil
	s.byID = make(map[string]int)
	s.meta = make(map[string]string)
	return nil
}

func (s *LocalStore) Search(query string, k int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) == 0 || k <= 0 {
		return nil, nil
	}

	qv, err := s.embedder.EmbedSingle(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scores := make([]float64, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = cosine(qv, v)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps insertion order on score ties.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	hits := make([]Hit, 0, k)
	for _, i := range order[:k] {
		hits = append(hits, Hit{
			ID:       s.docs[i].ID,
			Document: s.docs[i].Document,
			Metadata: s.docs[i].Metadata,
			Score:    scores[i],
		})
	}
	return hits, nil
}

func (s *LocalStore) GetMeta(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta[key], nil
}

func (s *LocalStore) SetMeta(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[key] = value
	return s.save()
}

// Count returns the number of stored records.
func (s *LocalStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *LocalStore) Close() error { return nil }

// cosine computes cosine similarity; zero-norm vectors score 0.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
