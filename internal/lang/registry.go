package lang

import (
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoGrammar signals that no usable grammar exists for a language; the
// caller should degrade to the chunking fallback rather than abort.
var ErrNoGrammar = errors.New("no grammar registered for language")

// Spec declares how to obtain a grammar for a language. New is called at
// most once per registry; Query is a tree-sitter S-expression pattern that
// captures top-level definitions. Capture families: @function and @class
// for definition nodes, @name for the identifier nested within one, and
// @import for import/include statements.
type Spec struct {
	New   func() *sitter.Language
	Query string
}

// Grammar is a loaded, ready-to-use parser configuration for one language.
type Grammar struct {
	Language *sitter.Language
	Query    string
}

// Registry maps language IDs to grammar specs and memoizes loads for the
// lifetime of the registry. Construct one explicitly and pass it down;
// there is no package-level instance, so tests can use isolated registries.
type Registry struct {
	mu     sync.Mutex
	specs  map[ID]*Spec
	loaded map[ID]*Grammar
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:  make(map[ID]*Spec),
		loaded: make(map[ID]*Grammar),
	}
}

// NewDefault creates a registry with all built-in languages registered.
func NewDefault() *Registry {
	r := NewRegistry()
	RegisterGo(r)
	RegisterPython(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterJava(r)
	RegisterC(r)
	RegisterCPP(r)
	RegisterCSharp(r)
	RegisterRuby(r)
	RegisterRust(r)
	RegisterPHP(r)
	RegisterBash(r)
	return r
}

// Register adds a grammar spec for a language.
func (r *Registry) Register(id ID, spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[id] = spec
}

// Load returns the grammar for a language, constructing it on first use.
// The first successful load is cached for the registry's lifetime; a failed
// load is not cached as success. Concurrent loads for the same ID are
// serialized so only one grammar instance is ever constructed.
func (r *Registry) Load(id ID) (*Grammar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.loaded[id]; ok {
		return g, nil
	}
	spec, ok := r.specs[id]
	if !ok || spec.New == nil {
		return nil, fmt.Errorf("load %s: %w", id, ErrNoGrammar)
	}
	language := spec.New()
	if language == nil {
		return nil, fmt.Errorf("load %s: %w", id, ErrNoGrammar)
	}
	g := &Grammar{Language: language, Query: spec.Query}
	r.loaded[id] = g
	return g, nil
}

// Registered reports whether a grammar spec exists for the language.
func (r *Registry) Registered(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.specs[id]
	return ok
}
