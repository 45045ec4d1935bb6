package lang

import "github.com/smacker/go-tree-sitter/ruby"

func RegisterRuby(r *Registry) {
	r.Register(Ruby, &Spec{
		New: ruby.GetLanguage,
		Query: `
			(method name: (identifier) @name) @function
			(singleton_method name: (identifier) @name) @function
			(class name: (constant) @name) @class
			(module name: (constant) @name) @class
		`,
	})
}
