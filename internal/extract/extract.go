package extract

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"

	"coderag/internal/element"
	"coderag/internal/lang"
)

// Outcome reports why extraction did or did not produce elements. Every
// non-OK outcome routes the caller to the chunking fallback; extraction
// never falls back internally so the two concerns stay separable.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNoGrammar
	OutcomeNoQuery
	OutcomeEmpty
	OutcomeParseError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNoGrammar:
		return "no grammar"
	case OutcomeNoQuery:
		return "no query"
	case OutcomeEmpty:
		return "empty"
	default:
		return "parse error"
	}
}

// Extractor parses source files with tree-sitter and extracts named
// definitions as code elements.
type Extractor struct {
	registry *lang.Registry
}

// NewExtractor creates an extractor backed by the given registry.
func NewExtractor(r *lang.Registry) *Extractor {
	return &Extractor{registry: r}
}

// capture is one query hit before it becomes an element.
type capture struct {
	family    string // "function", "class", or "import"
	node      *sitter.Node
	startByte uint32
	endByte   uint32
}

// Extract parses src and returns the elements matched by the language's
// query. The syntax tree lives only for the duration of this call.
func (e *Extractor) Extract(path string, src []byte, id lang.ID) ([]element.CodeElement, Outcome) {
	grammar, err := e.registry.Load(id)
	if err != nil {
		if errors.Is(err, lang.ErrNoGrammar) {
			return nil, OutcomeNoGrammar
		}
		return nil, OutcomeParseError
	}
	if strings.TrimSpace(grammar.Query) == "" {
		return nil, OutcomeNoQuery
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar.Language)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, OutcomeParseError
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(grammar.Query), grammar.Language)
	if err != nil {
		return nil, OutcomeParseError
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var defs, classes, imports []capture
	var names []capture
	seen := make(map[[2]uint32]string) // span → family, for per-node dedup

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, cap := range m.Captures {
			c := capture{
				family:    q.CaptureNameForId(cap.Index),
				node:      cap.Node,
				startByte: cap.Node.StartByte(),
				endByte:   cap.Node.EndByte(),
			}
			span := [2]uint32{c.startByte, c.endByte}
			switch c.family {
			case "name":
				names = append(names, c)
			case "import":
				if seen[span] != "import" {
					seen[span] = "import"
					imports = append(imports, c)
				}
			case "function", "class":
				// A node may match multiple query branches; emit it once.
				if seen[span] == c.family {
					continue
				}
				seen[span] = c.family
				defs = append(defs, c)
				if c.family == "class" {
					classes = append(classes, c)
				}
			}
		}
	}

	defs = dropWrapped(defs)
	elems := e.buildElements(path, src, id, defs, classes, names)
	elems = append(elems, importElements(path, src, imports)...)

	if len(elems) == 0 {
		return nil, OutcomeEmpty
	}

	// Present elements in source order.
	sort.SliceStable(elems, func(i, j int) bool {
		return lineRangeStart(elems[i].LineRange) < lineRangeStart(elems[j].LineRange)
	})
	return elems, OutcomeOK
}

func (e *Extractor) buildElements(path string, src []byte, id lang.ID, defs, classes, names []capture) []element.CodeElement {
	elems := make([]element.CodeElement, 0, len(defs))
	for _, d := range defs {
		name := containedName(d, names, src)

		typ := element.TypeFunction
		if d.family == "class" {
			typ = element.TypeClass
		}

		var parent string
		if typ == element.TypeFunction {
			parent = enclosingClass(d, classes, names, src)
		}

		doc := docstringFor(id, d.node, src)

		el := element.CodeElement{
			ID:          uuid.NewString(),
			Type:        typ,
			Name:        name,
			Code:        string(src[d.startByte:d.endByte]),
			FilePath:    path,
			LineRange:   element.LineRange(int(d.node.StartPoint().Row)+1, int(d.node.EndPoint().Row)+1),
			Docstring:   doc,
			ParentClass: parent,
		}
		el.Description = element.Describe(typ, name, parent, path, el.LineRange)
		elems = append(elems, el)
	}
	return elems
}

// wrapperTypes are nodes that wrap a definition the query also matches on
// its own (a decorated or exported declaration hits both branches).
var wrapperTypes = map[string]bool{
	"decorated_definition": true,
	"export_statement":     true,
}

// dropWrapped removes a definition capture whose span sits inside a
// same-family wrapper capture, so one declaration never yields two
// elements. Genuinely nested definitions (a method in a class, a closure in
// a function) are kept.
func dropWrapped(defs []capture) []capture {
	kept := make([]capture, 0, len(defs))
	for _, d := range defs {
		wrapped := false
		for _, w := range defs {
			if w.family == d.family && wrapperTypes[w.node.Type()] &&
				w.startByte <= d.startByte && w.endByte >= d.endByte &&
				(w.startByte != d.startByte || w.endByte != d.endByte) {
				wrapped = true
				break
			}
		}
		if !wrapped {
			kept = append(kept, d)
		}
	}
	return kept
}

// containedName finds the name capture fully inside the definition's byte
// span. The earliest such capture is the definition's own identifier; later
// ones belong to nested definitions.
func containedName(def capture, names []capture, src []byte) string {
	var best *capture
	for i := range names {
		n := &names[i]
		if n.startByte >= def.startByte && n.endByte <= def.endByte {
			if best == nil || n.startByte < best.startByte {
				best = n
			}
		}
	}
	if best == nil {
		return element.UnknownName
	}
	return string(src[best.startByte:best.endByte])
}

// enclosingClass returns the name of the innermost class whose span strictly
// contains the definition, or "".
func enclosingClass(def capture, classes, names []capture, src []byte) string {
	var inner *capture
	for i := range classes {
		c := &classes[i]
		if c.startByte <= def.startByte && c.endByte >= def.endByte &&
			(c.startByte != def.startByte || c.endByte != def.endByte) {
			if inner == nil || (c.endByte-c.startByte) < (inner.endByte-inner.startByte) {
				inner = c
			}
		}
	}
	if inner == nil {
		return ""
	}
	name := containedName(*inner, names, src)
	if name == element.UnknownName {
		return ""
	}
	return name
}

// importElements coalesces import captures separated only by whitespace into
// blocks and emits one imports element per block, so each element's code
// stays a verbatim substring of the source.
func importElements(path string, src []byte, imports []capture) []element.CodeElement {
	if len(imports) == 0 {
		return nil
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].startByte < imports[j].startByte })

	type block struct {
		start, end capture
	}
	blocks := []block{{start: imports[0], end: imports[0]}}
	for _, c := range imports[1:] {
		last := &blocks[len(blocks)-1]
		if c.startByte <= last.end.endByte {
			if c.endByte > last.end.endByte {
				last.end = c
			}
			continue
		}
		gap := src[last.end.endByte:c.startByte]
		if strings.TrimSpace(string(gap)) == "" {
			last.end = c
			continue
		}
		blocks = append(blocks, block{start: c, end: c})
	}

	elems := make([]element.CodeElement, 0, len(blocks))
	for _, b := range blocks {
		lr := element.LineRange(int(b.start.node.StartPoint().Row)+1, int(b.end.node.EndPoint().Row)+1)
		el := element.CodeElement{
			ID:          uuid.NewString(),
			Type:        element.TypeImports,
			Code:        string(src[b.start.startByte:b.end.endByte]),
			FilePath:    path,
			LineRange:   lr,
			Description: element.Describe(element.TypeImports, "", "", path, lr),
		}
		elems = append(elems, el)
	}
	return elems
}

func lineRangeStart(lr string) int {
	n := 0
	for _, r := range lr {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
