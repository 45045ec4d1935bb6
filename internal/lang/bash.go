package lang

import "github.com/smacker/go-tree-sitter/bash"

func RegisterBash(r *Registry) {
	r.Register(Bash, &Spec{
		New: bash.GetLanguage,
		Query: `
			(function_definition name: (word) @name) @function
		`,
	})
}
