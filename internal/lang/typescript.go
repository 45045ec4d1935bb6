package lang

import (
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

const typescriptQuery = `
	(function_declaration name: (identifier) @name) @function
	(class_declaration name: (type_identifier) @name) @class
	(method_definition name: (property_identifier) @name) @function
	(export_statement (function_declaration name: (identifier) @name)) @function
	(export_statement (class_declaration name: (type_identifier) @name)) @class
	(lexical_declaration (variable_declarator name: (identifier) @name value: (arrow_function))) @function
	(interface_declaration name: (type_identifier) @name) @class
	(type_alias_declaration name: (type_identifier) @name) @class
	(import_statement) @import
`

func RegisterTypeScript(r *Registry) {
	r.Register(TypeScript, &Spec{
		New:   typescript.GetLanguage,
		Query: typescriptQuery,
	})
	r.Register(TSX, &Spec{
		New:   tsx.GetLanguage,
		Query: typescriptQuery,
	})
}
