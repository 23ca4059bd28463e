package types

import sitter "github.com/smacker/go-tree-sitter"

// TextEdit replaces the bytes of Range with NewText.
// OldText, when set, is the content the range is expected to hold; an edit
// whose OldText no longer matches the document is stale.
type TextEdit struct {
	Range   Range
	NewText string
	OldText string
}

// EditInfo encapsulates the information needed for tree-sitter's Edit function.
// For a batch of edits it describes the single span enclosing all of them.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, column)
	OldEndPosition sitter.Point // Old end position
	NewEndPosition sitter.Point // New end position
}
