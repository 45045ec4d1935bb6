package lang

import "github.com/smacker/go-tree-sitter/rust"

func RegisterRust(r *Registry) {
	r.Register(Rust, &Spec{
		New: rust.GetLanguage,
		Query: `
			(function_item name: (identifier) @name) @function
			(struct_item name: (type_identifier) @name) @class
			(enum_item name: (type_identifier) @name) @class
			(trait_item name: (type_identifier) @name) @class
			(use_declaration) @import
		`,
	})
}
