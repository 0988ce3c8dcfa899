// Package history records buffer edits as invertible values and keeps the
// undo/redo stacks for one document.
package history

import (
	"fmt"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// Kind names an Edit variant.
type Kind int

const (
	KindInsertText Kind = iota
	KindDeleteText
	KindInsertLine
	KindDeleteLine
	KindJoinLines
	KindReplaceRange
)

func (k Kind) String() string {
	switch k {
	case KindInsertText:
		return "InsertText"
	case KindDeleteText:
		return "DeleteText"
	case KindInsertLine:
		return "InsertLine"
	case KindDeleteLine:
		return "DeleteLine"
	case KindJoinLines:
		return "JoinLines"
	case KindReplaceRange:
		return "ReplaceRange"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Edit is one atomic, invertible buffer mutation. The set of implementations
// is closed: InsertText, DeleteText, InsertLine, DeleteLine, JoinLines and
// ReplaceRange.
type Edit interface {
	Kind() Kind
	sealed()
}

// InsertText is text inserted at a point on one line.
type InsertText struct {
	Line int
	Col  int
	Text string
}

// DeleteText is text removed from a point on one line.
type DeleteText struct {
	Line int
	Col  int
	Text string
}

// InsertLine is a line split in two. RemainingText moved to the new line below Line.
type InsertLine struct {
	Line          int
	RemainingText string
}

// DeleteLine is Line removed and merged onto the end of Line-1.
// PrevLineEndLen is the grapheme length Line-1 had before the merge.
type DeleteLine struct {
	Line           int
	Content        string
	PrevLineEndLen int
}

// JoinLines is Line+1 appended onto Line. FirstLineEnd is the seam column.
type JoinLines struct {
	Line         int
	FirstLineEnd int
}

// ReplaceRange replaces the span [Start, End) holding OldText with NewText.
// Either text may span several lines.
type ReplaceRange struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	OldText   string
	NewText   string
}

func (InsertText) Kind() Kind   { return KindInsertText }
func (DeleteText) Kind() Kind   { return KindDeleteText }
func (InsertLine) Kind() Kind   { return KindInsertLine }
func (DeleteLine) Kind() Kind   { return KindDeleteLine }
func (JoinLines) Kind() Kind    { return KindJoinLines }
func (ReplaceRange) Kind() Kind { return KindReplaceRange }

func (InsertText) sealed()   {}
func (DeleteText) sealed()   {}
func (InsertLine) sealed()   {}
func (DeleteLine) sealed()   {}
func (JoinLines) sealed()    {}
func (ReplaceRange) sealed() {}

// Start returns the first position the replaced span covers.
func (r ReplaceRange) Start() types.Position {
	return types.Position{Line: r.StartLine, Col: r.StartCol}
}

// End returns the exclusive end of the replaced span.
func (r ReplaceRange) End() types.Position {
	return types.Position{Line: r.EndLine, Col: r.EndCol}
}

// Line reports the line an edit is anchored on.
func Line(e Edit) int {
	switch e := e.(type) {
	case InsertText:
		return e.Line
	case DeleteText:
		return e.Line
	case InsertLine:
		return e.Line
	case DeleteLine:
		return e.Line
	case JoinLines:
		return e.Line
	case ReplaceRange:
		return e.StartLine
	}
	return -1
}

func at(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func hasLine(buf buffer.Buffer, line int) bool {
	return line >= 0 && line < buf.LineCount()
}

// recorder collects EditInfo from buffer primitives and stops at the first error.
type recorder struct {
	buf   buffer.Buffer
	infos []types.EditInfo
	err   error
}

func (r *recorder) insert(pos types.Position, text string) {
	if r.err != nil || text == "" {
		return
	}
	info, err := r.buf.Insert(pos, text)
	if err != nil {
		r.err = err
		return
	}
	r.infos = append(r.infos, info)
}

func (r *recorder) delete(start, end types.Position) {
	if r.err != nil || start == end {
		return
	}
	info, err := r.buf.Delete(start, end)
	if err != nil {
		r.err = err
		return
	}
	r.infos = append(r.infos, info)
}

func (r *recorder) remove(pos types.Position, text string) {
	if r.err != nil || text == "" {
		return
	}
	info, err := r.buf.RemoveText(pos, text)
	if err != nil {
		r.err = err
		return
	}
	r.infos = append(r.infos, info)
}

func (r *recorder) result(what string, e Edit) []types.EditInfo {
	if r.err != nil {
		logger.DebugTagf("history", "%s %s: %v", what, e.Kind(), r.err)
	}
	return r.infos
}

func skip(what string, e Edit) []types.EditInfo {
	logger.DebugTagf("history", "%s %s skipped: out of range %+v", what, e.Kind(), e)
	return nil
}

// Apply performs e against buf and returns the byte-level changes it made.
// Edits whose lines do not exist in buf are ignored.
func Apply(buf buffer.Buffer, e Edit) []types.EditInfo {
	r := &recorder{buf: buf}
	switch e := e.(type) {
	case InsertText:
		if !hasLine(buf, e.Line) {
			return skip("apply", e)
		}
		r.insert(at(e.Line, e.Col), e.Text)

	case DeleteText:
		if !hasLine(buf, e.Line) {
			return skip("apply", e)
		}
		r.remove(at(e.Line, e.Col), e.Text)

	case InsertLine:
		if !hasLine(buf, e.Line) {
			return skip("apply", e)
		}
		split := buf.LineLen(e.Line) - utils.GraphemeLen(e.RemainingText)
		if split < 0 {
			split = 0
		}
		r.insert(at(e.Line, split), "\n")

	case DeleteLine:
		if e.Line < 1 || !hasLine(buf, e.Line) {
			return skip("apply", e)
		}
		r.delete(at(e.Line-1, e.PrevLineEndLen), at(e.Line, 0))

	case JoinLines:
		if !hasLine(buf, e.Line+1) || e.Line < 0 {
			return skip("apply", e)
		}
		r.delete(at(e.Line, e.FirstLineEnd), at(e.Line+1, 0))

	case ReplaceRange:
		if !hasLine(buf, e.StartLine) {
			return skip("apply", e)
		}
		r.delete(e.Start(), e.End())
		r.insert(e.Start(), e.NewText)
	}
	return r.result("apply", e)
}

// Reverse undoes e against buf, which must be in the state Apply left it in.
func Reverse(buf buffer.Buffer, e Edit) []types.EditInfo {
	r := &recorder{buf: buf}
	switch e := e.(type) {
	case InsertText:
		if !hasLine(buf, e.Line) {
			return skip("reverse", e)
		}
		r.remove(at(e.Line, e.Col), e.Text)

	case DeleteText:
		if !hasLine(buf, e.Line) {
			return skip("reverse", e)
		}
		r.insert(at(e.Line, e.Col), e.Text)

	case InsertLine:
		if e.Line < 0 || !hasLine(buf, e.Line+1) {
			return skip("reverse", e)
		}
		r.delete(at(e.Line, buf.LineLen(e.Line)), at(e.Line+1, 0))

	case DeleteLine:
		if e.Line < 1 || !hasLine(buf, e.Line-1) {
			return skip("reverse", e)
		}
		r.insert(at(e.Line-1, e.PrevLineEndLen), "\n")

	case JoinLines:
		if !hasLine(buf, e.Line) {
			return skip("reverse", e)
		}
		r.insert(at(e.Line, e.FirstLineEnd), "\n")

	case ReplaceRange:
		if !hasLine(buf, e.StartLine) {
			return skip("reverse", e)
		}
		r.remove(e.Start(), e.NewText)
		r.insert(e.Start(), e.OldText)
	}
	return r.result("reverse", e)
}
