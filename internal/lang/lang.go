package lang

import (
	"path/filepath"
	"strings"
)

// ID identifies a language the indexer knows about. An ID may resolve from
// the extension map without a grammar being registered for it; such
// languages take the chunking fallback path.
type ID string

const (
	Go         ID = "go"
	Python     ID = "python"
	JavaScript ID = "javascript"
	TypeScript ID = "typescript"
	TSX        ID = "tsx"
	Java       ID = "java"
	C          ID = "c"
	CPP        ID = "cpp"
	CSharp     ID = "csharp"
	Ruby       ID = "ruby"
	Rust       ID = "rust"
	PHP        ID = "php"
	Bash       ID = "bash"
	HTML       ID = "html"
	CSS        ID = "css"
	JSON       ID = "json"
	YAML       ID = "yaml"
	TOML       ID = "toml"
	Markdown   ID = "markdown"
	SQL        ID = "sql"
	Kotlin     ID = "kotlin"
	Swift      ID = "swift"
	Scala      ID = "scala"
	Lua        ID = "lua"
	Perl       ID = "perl"
	Haskell    ID = "haskell"
	Elixir     ID = "elixir"
	Dockerfile ID = "dockerfile"
	Make       ID = "make"
	Proto      ID = "proto"
)

// extensions maps a lowercased file extension (without dot) to a language.
var extensions = map[string]ID{
	"go":    Go,
	"py":    Python,
	"pyi":   Python,
	"js":    JavaScript,
	"jsx":   JavaScript,
	"mjs":   JavaScript,
	"cjs":   JavaScript,
	"ts":    TypeScript,
	"tsx":   TSX,
	"java":  Java,
	"c":     C,
	"h":     C,
	"cpp":   CPP,
	"cc":    CPP,
	"cxx":   CPP,
	"hpp":   CPP,
	"cs":    CSharp,
	"rb":    Ruby,
	"rs":    Rust,
	"php":   PHP,
	"sh":    Bash,
	"bash":  Bash,
	"zsh":   Bash,
	"html":  HTML,
	"css":   CSS,
	"json":  JSON,
	"yaml":  YAML,
	"yml":   YAML,
	"toml":  TOML,
	"md":    Markdown,
	"sql":   SQL,
	"kt":    Kotlin,
	"swift": Swift,
	"scala": Scala,
	"lua":   Lua,
	"pl":    Perl,
	"pm":    Perl,
	"hs":    Haskell,
	"ex":    Elixir,
	"exs":   Elixir,
	"proto": Proto,
	"mk":    Make,
}

// filenames maps exact file names for extensionless conventions.
var filenames = map[string]ID{
	"Dockerfile":  Dockerfile,
	"Makefile":    Make,
	"makefile":    Make,
	"GNUmakefile": Make,
}

// Resolve maps a file path to a language ID based on its extension
// (case-insensitive) or exact file name. Unmapped paths return ok=false.
func Resolve(path string) (ID, bool) {
	base := filepath.Base(path)
	if id, ok := filenames[base]; ok {
		return id, true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	if ext == "" {
		return "", false
	}
	id, ok := extensions[ext]
	return id, ok
}
