package history

import (
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// EditOperation is an Edit plus the cursor and scroll state on either side of it.
// Undo restores the Before pair, redo the After pair.
type EditOperation struct {
	Edit         Edit
	CursorBefore types.Position
	CursorAfter  types.Position
	ScrollBefore int
	ScrollAfter  int
	// Fused is set when the inserted text joined a neighbouring grapheme.
	// Such operations are never grouped.
	Fused bool
}

// tryMerge coalesces next into prev when both are contiguous typing or
// backspacing on the same line.
func tryMerge(prev, next EditOperation) (EditOperation, bool) {
	if prev.Fused || next.Fused {
		return prev, false
	}
	switch p := prev.Edit.(type) {
	case InsertText:
		n, ok := next.Edit.(InsertText)
		if !ok || n.Line != p.Line || n.Col != p.Col+utils.GraphemeLen(p.Text) {
			return prev, false
		}
		p.Text += n.Text
		prev.Edit = p

	case DeleteText:
		n, ok := next.Edit.(DeleteText)
		if !ok || n.Line != p.Line || n.Col != p.Col-utils.GraphemeLen(n.Text) {
			return prev, false
		}
		p.Text = n.Text + p.Text
		p.Col = n.Col
		prev.Edit = p

	default:
		return prev, false
	}

	prev.CursorAfter = next.CursorAfter
	prev.ScrollAfter = next.ScrollAfter
	return prev, true
}

// groupable reports whether two edits are the same typing kind on the same line.
func groupable(prev, next Edit) bool {
	switch p := prev.(type) {
	case InsertText:
		n, ok := next.(InsertText)
		return ok && n.Line == p.Line
	case DeleteText:
		n, ok := next.(DeleteText)
		return ok && n.Line == p.Line
	}
	return false
}
