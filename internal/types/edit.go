package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo carries what tree-sitter's incremental Edit needs.
type EditInfo struct {
	StartIndex     uint32 // Start byte of the edit
	OldEndIndex    uint32 // End byte of the old text
	NewEndIndex    uint32 // End byte of the new text
	StartPosition  sitter.Point
	OldEndPosition sitter.Point
	NewEndPosition sitter.Point
}

// InputEdit converts the info into the sitter form.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}
