package lang

import "github.com/smacker/go-tree-sitter/java"

func RegisterJava(r *Registry) {
	r.Register(Java, &Spec{
		New: java.GetLanguage,
		Query: `
			(class_declaration name: (identifier) @name) @class
			(interface_declaration name: (identifier) @name) @class
			(enum_declaration name: (identifier) @name) @class
			(method_declaration name: (identifier) @name) @function
			(constructor_declaration name: (identifier) @name) @function
			(import_declaration) @import
		`,
	})
}
