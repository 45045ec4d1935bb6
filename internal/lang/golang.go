package lang

import "github.com/smacker/go-tree-sitter/golang"

func RegisterGo(r *Registry) {
	r.Register(Go, &Spec{
		New: golang.GetLanguage,
		Query: `
			(function_declaration name: (identifier) @name) @function
			(method_declaration name: (field_identifier) @name) @function
			(type_declaration (type_spec name: (type_identifier) @name)) @class
			(import_declaration) @import
		`,
	})
}
