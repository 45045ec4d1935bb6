package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"coderag/internal/element"
	"coderag/internal/lang"
)

// docstringFor returns the leading documentation string of a definition for
// languages that support one, or the "No documentation" sentinel.
func docstringFor(id lang.ID, node *sitter.Node, src []byte) string {
	if id != lang.Python {
		return element.NoDocstring
	}
	if doc := pythonDocstring(node, src); doc != "" {
		return doc
	}
	return element.NoDocstring
}

// pythonDocstring extracts the first string expression in a function or
// class body.
func pythonDocstring(node *sitter.Node, src []byte) string {
	if node.Type() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			node = def
		}
	}
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str == nil || str.Type() != "string" {
		return ""
	}
	return trimStringQuotes(string(src[str.StartByte():str.EndByte()]))
}

func trimStringQuotes(s string) string {
	for _, prefix := range []string{"r", "R", "b", "B", "u", "U", "f", "F"} {
		s = strings.TrimPrefix(s, prefix)
	}
	for _, q := range []string{`"""`, "'''", `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return strings.TrimSpace(s)
}
