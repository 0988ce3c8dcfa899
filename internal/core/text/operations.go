// Package text implements the edit-producing actions: typing, newline,
// delete, backspace and selection replacement. Each action mutates the
// buffer and returns the operation the caller records in history.
package text

import (
	"strings"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// EditorInterface defines editor methods needed
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetScroll() int
	ScrollDown(lines int)
	AtBottomRow() bool
	GetSelection() (start types.Position, end types.Position, ok bool)
	ClearSelection()
}

// Change is the result of one action: the operation to push onto the undo
// stack and the byte-level edits it made, for incremental re-parsing.
type Change struct {
	Op    history.EditOperation
	Edits []types.EditInfo
}

// Operations handles text insertion/deletion
type Operations struct {
	editor EditorInterface
}

func NewOperations(editor EditorInterface) *Operations {
	return &Operations{editor: editor}
}

// snapshot is the cursor and scroll observed when an action starts.
type snapshot struct {
	cursor types.Position
	scroll int
}

func (o *Operations) begin() snapshot {
	return snapshot{cursor: o.editor.GetCursor(), scroll: o.editor.GetScroll()}
}

// commit applies e, moves the cursor to after() and wraps everything up.
// after runs once e has been applied.
func (o *Operations) commit(s snapshot, e history.Edit, after func() types.Position) (Change, bool) {
	infos := history.Apply(o.editor.GetBuffer(), e)
	if len(infos) == 0 {
		logger.DebugTagf("text", "Operations: %s had no effect", e.Kind())
		return Change{}, false
	}
	o.editor.SetCursor(after())
	return Change{
		Op: history.EditOperation{
			Edit:         e,
			CursorBefore: s.cursor,
			CursorAfter:  o.editor.GetCursor(),
			ScrollBefore: s.scroll,
			ScrollAfter:  o.editor.GetScroll(),
		},
		Edits: infos,
	}, true
}

func fixed(pos types.Position) func() types.Position {
	return func() types.Position { return pos }
}

// endOf locates the end of text once it is inserted at pos. It counts bytes,
// so text that fuses with a neighbouring grapheme leaves the cursor after
// the fused cluster.
func (o *Operations) endOf(pos types.Position, text string) func() types.Position {
	lastLine := pos.Line + strings.Count(text, "\n")
	end := len(text) - strings.LastIndex(text, "\n") - 1
	if lastLine == pos.Line {
		end += utils.GraphemeToByteOffset(o.currentLine(pos), pos.Col)
	}
	return func() types.Position {
		line, _ := o.editor.GetBuffer().Line(lastLine)
		return types.Position{Line: lastLine, Col: utils.GraphemesBefore(line, end)}
	}
}

// insertText records single-line text typed or pasted at pos. When the line
// gains a different number of graphemes than text holds, the text fused with
// its neighbours and the operation is kept out of typing groups.
func (o *Operations) insertText(s snapshot, pos types.Position, text string) (Change, bool) {
	buf := o.editor.GetBuffer()
	before := buf.LineLen(pos.Line)
	c, ok := o.commit(s, history.InsertText{Line: pos.Line, Col: pos.Col, Text: text}, o.endOf(pos, text))
	if ok && buf.LineLen(pos.Line)-before != utils.GraphemeLen(text) {
		c.Op.Fused = true
	}
	return c, ok
}

func (o *Operations) currentLine(pos types.Position) string {
	line, err := o.editor.GetBuffer().Line(pos.Line)
	if err != nil {
		logger.Warnf("Operations: cursor on missing line %d: %v", pos.Line, err)
		return ""
	}
	return line
}

// replace swaps the selected span for text as a single ReplaceRange.
func (o *Operations) replace(s snapshot, start, end types.Position, text string) (Change, bool) {
	buf := o.editor.GetBuffer()
	e := history.ReplaceRange{
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
		OldText:   buf.Text(start, end),
		NewText:   text,
	}
	o.editor.ClearSelection()
	return o.commit(s, e, o.endOf(start, text))
}

// InsertChar types one grapheme at the cursor. An active selection is
// replaced by it in a single undoable step.
func (o *Operations) InsertChar(g string) (Change, bool) {
	if g == "" {
		return Change{}, false
	}
	s := o.begin()
	if start, end, ok := o.editor.GetSelection(); ok {
		return o.replace(s, start, end, g)
	}
	o.editor.ClearSelection()

	pos := s.cursor
	pos.Col = utils.ClampCol(o.currentLine(pos), pos.Col)
	return o.insertText(s, pos, g)
}

// InsertNewline splits the current line at the cursor.
func (o *Operations) InsertNewline() (Change, bool) {
	s := o.begin()
	if start, end, ok := o.editor.GetSelection(); ok {
		return o.replace(s, start, end, "\n")
	}
	o.editor.ClearSelection()

	pos := s.cursor
	line := o.currentLine(pos)
	pos.Col = utils.ClampCol(line, pos.Col)
	e := history.InsertLine{Line: pos.Line, RemainingText: utils.GraphemeSlice(line, pos.Col, utils.GraphemeLen(line))}
	if o.editor.AtBottomRow() {
		o.editor.ScrollDown(1)
	}
	return o.commit(s, e, fixed(types.Position{Line: pos.Line + 1, Col: 0}))
}

// DeleteForward removes the grapheme under the cursor, or joins the next
// line when the cursor is at the end of its line.
func (o *Operations) DeleteForward() (Change, bool) {
	if _, _, ok := o.editor.GetSelection(); ok {
		return o.DeleteSelection()
	}
	s := o.begin()
	buf := o.editor.GetBuffer()
	pos := s.cursor
	line := o.currentLine(pos)
	pos.Col = utils.ClampCol(line, pos.Col)

	if g, ok := utils.GraphemeAt(line, pos.Col); ok {
		return o.commit(s, history.DeleteText{Line: pos.Line, Col: pos.Col, Text: g}, fixed(pos))
	}
	if pos.Line < buf.LineCount()-1 {
		return o.commit(s, history.JoinLines{Line: pos.Line, FirstLineEnd: pos.Col}, fixed(pos))
	}
	return Change{}, false
}

// Backspace removes the grapheme before the cursor, or merges the current
// line onto the previous one when the cursor is at column 0.
func (o *Operations) Backspace() (Change, bool) {
	if _, _, ok := o.editor.GetSelection(); ok {
		return o.DeleteSelection()
	}
	s := o.begin()
	buf := o.editor.GetBuffer()
	pos := s.cursor
	line := o.currentLine(pos)
	pos.Col = utils.ClampCol(line, pos.Col)

	if pos.Col > 0 {
		g, _ := utils.GraphemeAt(line, pos.Col-1)
		return o.commit(s, history.DeleteText{Line: pos.Line, Col: pos.Col - 1, Text: g}, fixed(types.Position{Line: pos.Line, Col: pos.Col - 1}))
	}
	if pos.Line > 0 {
		prevLen := buf.LineLen(pos.Line - 1)
		e := history.DeleteLine{Line: pos.Line, Content: line, PrevLineEndLen: prevLen}
		return o.commit(s, e, fixed(types.Position{Line: pos.Line - 1, Col: prevLen}))
	}
	return Change{}, false
}

// DeleteSelection removes the selected text.
func (o *Operations) DeleteSelection() (Change, bool) {
	start, end, ok := o.editor.GetSelection()
	if !ok {
		return Change{}, false
	}
	return o.replace(o.begin(), start, end, "")
}

// ReplaceSelection puts text in place of the selection, or inserts it at
// the cursor when nothing is selected.
func (o *Operations) ReplaceSelection(text string) (Change, bool) {
	text = normalizeNewlines(text)
	if start, end, ok := o.editor.GetSelection(); ok {
		return o.replace(o.begin(), start, end, text)
	}
	return o.InsertText(text)
}

// InsertText inserts possibly multi-line text at the cursor, replacing any
// selection. Single-line text is recorded as InsertText, anything else as a
// ReplaceRange over an empty span.
func (o *Operations) InsertText(text string) (Change, bool) {
	text = normalizeNewlines(text)
	if text == "" {
		return Change{}, false
	}
	s := o.begin()
	if start, end, ok := o.editor.GetSelection(); ok {
		return o.replace(s, start, end, text)
	}
	o.editor.ClearSelection()

	pos := s.cursor
	pos.Col = utils.ClampCol(o.currentLine(pos), pos.Col)
	if !strings.Contains(text, "\n") {
		return o.insertText(s, pos, text)
	}
	return o.replace(s, pos, pos, text)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
