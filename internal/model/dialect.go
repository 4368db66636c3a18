// Package model defines the data structures for the AIGCAP convention engine.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// DialectFamily identifies how comments are delimited for a file category.
// Dialects form a closed variant set: adding a language is a table change,
// not new control flow.
type DialectFamily string

const (
	// FamilyBlock covers /* ... */ languages with a " * " continuation prefix.
	FamilyBlock DialectFamily = "block"
	// FamilyHash covers languages commenting with a leading #.
	FamilyHash DialectFamily = "hash"
	// FamilyDash covers languages commenting with a leading --.
	FamilyDash DialectFamily = "dash"
	// FamilyHTML covers <!-- ... --> markup languages.
	FamilyHTML DialectFamily = "html"
)

// Dialect describes the comment delimiter strategy for one file category.
type Dialect struct {
	Language string
	Family   DialectFamily
	// Open and Close delimit the comment when the family is block or html.
	Open  string
	Close string
	// LinePrefix is prepended to every header line inside the comment.
	LinePrefix string
}

// IsBlock reports whether the dialect wraps the header in open/close delimiters.
func (d Dialect) IsBlock() bool {
	return d.Family == FamilyBlock || d.Family == FamilyHTML
}

var blockDialect = func(language string) Dialect {
	return Dialect{Language: language, Family: FamilyBlock, Open: "/*", Close: " */", LinePrefix: " * "}
}

var hashDialect = func(language string) Dialect {
	return Dialect{Language: language, Family: FamilyHash, LinePrefix: "# "}
}

var dashDialect = func(language string) Dialect {
	return Dialect{Language: language, Family: FamilyDash, LinePrefix: "-- "}
}

var htmlDialect = func(language string) Dialect {
	return Dialect{Language: language, Family: FamilyHTML, Open: "<!--", Close: "-->", LinePrefix: ""}
}

// dialects maps lowercase file extensions to their comment dialect.
var dialects = map[string]Dialect{
	".rs":    blockDialect("Rust"),
	".c":     blockDialect("C"),
	".h":     blockDialect("C Header"),
	".cpp":   blockDialect("C++"),
	".hpp":   blockDialect("C++ Header"),
	".java":  blockDialect("Java"),
	".js":    blockDialect("JavaScript"),
	".jsx":   blockDialect("JSX"),
	".ts":    blockDialect("TypeScript"),
	".tsx":   blockDialect("TSX"),
	".go":    blockDialect("Go"),
	".swift": blockDialect("Swift"),
	".kt":    blockDialect("Kotlin"),
	".scala": blockDialect("Scala"),
	".cs":    blockDialect("C#"),
	".css":   blockDialect("CSS"),
	".scss":  blockDialect("SCSS"),

	".py":   hashDialect("Python"),
	".rb":   hashDialect("Ruby"),
	".sh":   hashDialect("Shell"),
	".bash": hashDialect("Bash"),
	".yaml": hashDialect("YAML"),
	".yml":  hashDialect("YAML"),
	".toml": hashDialect("TOML"),
	".r":    hashDialect("R"),

	".sql": dashDialect("SQL"),
	".lua": dashDialect("Lua"),
	".hs":  dashDialect("Haskell"),

	".html": htmlDialect("HTML"),
	".xml":  htmlDialect("XML"),
	".svg":  htmlDialect("SVG"),
	".vue":  htmlDialect("Vue"),
}

// DialectForPath resolves the comment dialect for a file path by extension.
// The second return value is false for unsupported file types, which are
// excluded from enforcement and counted as unsupported by the scanner.
func DialectForPath(path Path) (Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(string(path)))
	d, ok := dialects[ext]

	return d, ok
}

// SupportedExtensions returns the extensions with a dialect mapping.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(dialects))
	for ext := range dialects {
		exts = append(exts, ext)
	}

	return exts
}
