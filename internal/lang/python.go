package lang

import "github.com/smacker/go-tree-sitter/python"

func RegisterPython(r *Registry) {
	r.Register(Python, &Spec{
		New: python.GetLanguage,
		Query: `
			(function_definition name: (identifier) @name) @function
			(class_definition name: (identifier) @name) @class
			(decorated_definition definition: (function_definition name: (identifier) @name)) @function
			(decorated_definition definition: (class_definition name: (identifier) @name)) @class
			(import_statement) @import
			(import_from_statement) @import
		`,
	})
}
