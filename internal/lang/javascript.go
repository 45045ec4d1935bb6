package lang

import "github.com/smacker/go-tree-sitter/javascript"

func RegisterJavaScript(r *Registry) {
	r.Register(JavaScript, &Spec{
		New: javascript.GetLanguage,
		Query: `
			(function_declaration name: (identifier) @name) @function
			(class_declaration name: (identifier) @name) @class
			(method_definition name: (property_identifier) @name) @function
			(export_statement (function_declaration name: (identifier) @name)) @function
			(export_statement (class_declaration name: (identifier) @name)) @class
			(lexical_declaration (variable_declarator name: (identifier) @name value: (arrow_function))) @function
			(import_statement) @import
		`,
	})
}
