package lang

import "github.com/smacker/go-tree-sitter/csharp"

func RegisterCSharp(r *Registry) {
	r.Register(CSharp, &Spec{
		New: csharp.GetLanguage,
		Query: `
			(class_declaration name: (identifier) @name) @class
			(interface_declaration name: (identifier) @name) @class
			(struct_declaration name: (identifier) @name) @class
			(method_declaration name: (identifier) @name) @function
			(using_directive) @import
		`,
	})
}
