package lang

import "github.com/smacker/go-tree-sitter/php"

func RegisterPHP(r *Registry) {
	r.Register(PHP, &Spec{
		New: php.GetLanguage,
		Query: `
			(function_definition name: (name) @name) @function
			(method_declaration name: (name) @name) @function
			(class_declaration name: (name) @name) @class
			(interface_declaration name: (name) @name) @class
			(trait_declaration name: (name) @name) @class
			(namespace_use_declaration) @import
		`,
	})
}
