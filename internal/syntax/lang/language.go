package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
)

// Language represents a programming language the refactorings can parse
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string
}

// JavaScript is the grammar used for .js, .mjs, .cjs and .jsx buffers.
var JavaScript = &Language{
	Name:           "JavaScript",
	TreeSitterLang: jssrc.GetLanguage(),
	Extensions:     []string{".js", ".mjs", ".cjs", ".jsx"},
}
