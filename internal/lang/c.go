package lang

import "github.com/smacker/go-tree-sitter/c"

func RegisterC(r *Registry) {
	r.Register(C, &Spec{
		New: c.GetLanguage,
		Query: `
			(function_definition declarator: (function_declarator declarator: (identifier) @name)) @function
			(struct_specifier name: (type_identifier) @name body: (field_declaration_list)) @class
			(enum_specifier name: (type_identifier) @name body: (enumerator_list)) @class
			(preproc_include) @import
		`,
	})
}
