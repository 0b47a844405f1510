// Package language classifies a file path into a language identifier.
package language

import (
	"path/filepath"
	"strings"
)

var byExtension = map[string]string{
	"py":    "python",
	"pyw":   "python",
	"js":    "javascript",
	"mjs":   "javascript",
	"cjs":   "javascript",
	"ts":    "typescript",
	"mts":   "typescript",
	"go":    "go",
	"rs":    "rust",
	"rb":    "ruby",
	"php":   "php",
	"pl":    "perl",
	"lua":   "lua",
	"sh":    "shell",
	"bash":  "shell",
	"zsh":   "shell",
	"java":  "java",
	"kt":    "kotlin",
	"kts":   "kotlin",
	"scala": "scala",
	"swift": "swift",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"cc":    "cpp",
	"cxx":   "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"dart":  "dart",
	"ex":    "elixir",
	"exs":   "elixir",
	"erl":   "erlang",
	"hs":    "haskell",
	"jl":    "julia",
	"r":     "r",
	"zig":   "zig",
	"nim":   "nim",
	"ml":    "ocaml",
	"clj":   "clojure",
}

// Extension returns the lower-cased text after the last dot of the base name,
// or "" when the name has no extension. Only the final dot-segment counts, so
// "a.tar.gz" has extension "gz".
func Extension(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	if len(ext) <= 1 {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// Classify returns the language identifier for path. Extensions missing from
// the table classify as the extension itself; paths without an extension
// have no language.
func Classify(path string) (string, bool) {
	ext := Extension(path)
	if ext == "" {
		return "", false
	}
	if lang, ok := byExtension[ext]; ok {
		return lang, true
	}
	return ext, true
}
