package lang

import "github.com/smacker/go-tree-sitter/cpp"

func RegisterCPP(r *Registry) {
	r.Register(CPP, &Spec{
		New: cpp.GetLanguage,
		Query: `
			(function_definition declarator: (function_declarator declarator: (identifier) @name)) @function
			(function_definition declarator: (function_declarator declarator: (qualified_identifier) @name)) @function
			(class_specifier name: (type_identifier) @name body: (field_declaration_list)) @class
			(struct_specifier name: (type_identifier) @name body: (field_declaration_list)) @class
			(preproc_include) @import
		`,
	})
}
