package text

import (
	"testing"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/core/selection"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/google/go-cmp/cmp"
)

type fakeEditor struct {
	buf       *buffer.SliceBuffer
	cursor    types.Position
	scroll    int
	bottomRow bool
	sel       *selection.Selection
}

func (f *fakeEditor) GetBuffer() buffer.Buffer     { return f.buf }
func (f *fakeEditor) GetCursor() types.Position    { return f.cursor }
func (f *fakeEditor) SetCursor(pos types.Position) { f.cursor = pos }
func (f *fakeEditor) GetScroll() int               { return f.scroll }
func (f *fakeEditor) ScrollDown(n int)             { f.scroll += n }
func (f *fakeEditor) AtBottomRow() bool            { return f.bottomRow }
func (f *fakeEditor) ClearSelection()              { f.sel = nil }

func (f *fakeEditor) GetSelection() (types.Position, types.Position, bool) {
	if f.sel == nil || !f.sel.IsActive() {
		return types.Position{}, types.Position{}, false
	}
	start, end := f.sel.Range()
	return start, end, true
}

func newFixture(cursor types.Position, lines ...string) (*fakeEditor, *Operations) {
	ed := &fakeEditor{buf: buffer.NewSliceBufferFromLines(lines), cursor: cursor}
	return ed, NewOperations(ed)
}

func p(line, col int) types.Position { return types.Position{Line: line, Col: col} }

// mustChange returns a checker that fails the test when an operation
// reports no effect.
func mustChange(t *testing.T) func(Change, bool) Change {
	return func(c Change, ok bool) Change {
		t.Helper()
		if !ok {
			t.Fatal("operation reported no effect")
		}
		return c
	}
}

func checkLines(t *testing.T, ed *fakeEditor, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, ed.buf.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertChar(t *testing.T) {
	ed, ops := newFixture(p(0, 2), "abd")
	c := mustChange(t)(ops.InsertChar("c"))
	checkLines(t, ed, "abcd")
	want := history.EditOperation{
		Edit:         history.InsertText{Line: 0, Col: 2, Text: "c"},
		CursorBefore: p(0, 2),
		CursorAfter:  p(0, 3),
	}
	if diff := cmp.Diff(want, c.Op); diff != "" {
		t.Fatalf("op mismatch (-want +got):\n%s", diff)
	}
	if len(c.Edits) != 1 {
		t.Fatalf("edits = %d, want 1", len(c.Edits))
	}
}

func TestInsertCharFusingWithNeighbour(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor types.Position
		g      string
		want   string
		after  types.Position
	}{
		{"combining mark", "ex", p(0, 1), "\u0301", "e\u0301x", p(0, 1)},
		{"second flag half", "\U0001F1FA", p(0, 1), "\U0001F1F8", "\U0001F1FA\U0001F1F8", p(0, 1)},
		{"first flag half", "\U0001F1F8", p(0, 0), "\U0001F1FA", "\U0001F1FA\U0001F1F8", p(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, ops := newFixture(tt.cursor, tt.line)
			c := mustChange(t)(ops.InsertChar(tt.g))
			checkLines(t, ed, tt.want)
			if c.Op.CursorAfter != tt.after || ed.cursor != tt.after {
				t.Fatalf("cursor after = %v (editor %v), want %v", c.Op.CursorAfter, ed.cursor, tt.after)
			}
			if !c.Op.Fused {
				t.Fatal("operation should be marked fused")
			}
			history.Reverse(ed.buf, c.Op.Edit)
			checkLines(t, ed, tt.line)
		})
	}
}

func TestInsertCharPlainIsNotFused(t *testing.T) {
	_, ops := newFixture(p(0, 1), "e")
	if c := mustChange(t)(ops.InsertChar("\u00e9")); c.Op.Fused {
		t.Fatal("precomposed letter should not be marked fused")
	}
}

func TestInsertCharReplacesSelection(t *testing.T) {
	ed, ops := newFixture(p(0, 4), "hello")
	ed.sel = &selection.Selection{Anchor: p(0, 1), Cursor: p(0, 4)}
	c := mustChange(t)(ops.InsertChar("a"))
	checkLines(t, ed, "hao")
	if ed.sel != nil {
		t.Fatal("selection should be cleared")
	}
	r, ok := c.Op.Edit.(history.ReplaceRange)
	if !ok || r.OldText != "ell" || r.NewText != "a" {
		t.Fatalf("edit = %+v, want ReplaceRange ell -> a", c.Op.Edit)
	}
	if ed.cursor != p(0, 2) {
		t.Fatalf("cursor = %v, want (0,2)", ed.cursor)
	}
	history.Reverse(ed.buf, c.Op.Edit)
	checkLines(t, ed, "hello")
}

func TestInsertNewline(t *testing.T) {
	ed, ops := newFixture(p(0, 3), "hello")
	c := mustChange(t)(ops.InsertNewline())
	checkLines(t, ed, "hel", "lo")
	if diff := cmp.Diff(history.InsertLine{Line: 0, RemainingText: "lo"}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}
	if ed.cursor != p(1, 0) {
		t.Fatalf("cursor = %v, want (1,0)", ed.cursor)
	}
}

func TestInsertNewlineAtBottomRowScrolls(t *testing.T) {
	ed, ops := newFixture(p(0, 5), "hello")
	ed.bottomRow = true
	c := mustChange(t)(ops.InsertNewline())
	if c.Op.ScrollBefore != 0 || c.Op.ScrollAfter != 1 {
		t.Fatalf("scroll before/after = %d/%d, want 0/1", c.Op.ScrollBefore, c.Op.ScrollAfter)
	}
}

func TestDeleteForward(t *testing.T) {
	ed, ops := newFixture(p(0, 1), "abc", "de")
	c := mustChange(t)(ops.DeleteForward())
	checkLines(t, ed, "ac", "de")
	if diff := cmp.Diff(history.DeleteText{Line: 0, Col: 1, Text: "b"}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}

	ed.cursor = p(0, 2)
	c = mustChange(t)(ops.DeleteForward())
	checkLines(t, ed, "acde")
	if diff := cmp.Diff(history.JoinLines{Line: 0, FirstLineEnd: 2}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}

	ed.cursor = p(0, 4)
	if _, ok := ops.DeleteForward(); ok {
		t.Fatal("delete at end of document should be a no-op")
	}
}

func TestBackspace(t *testing.T) {
	ed, ops := newFixture(p(1, 1), "ab", "cd")
	c := mustChange(t)(ops.Backspace())
	checkLines(t, ed, "ab", "d")
	if diff := cmp.Diff(history.DeleteText{Line: 1, Col: 0, Text: "c"}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}

	c = mustChange(t)(ops.Backspace())
	checkLines(t, ed, "abd")
	if diff := cmp.Diff(history.DeleteLine{Line: 1, Content: "d", PrevLineEndLen: 2}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}
	if ed.cursor != p(0, 2) {
		t.Fatalf("cursor = %v, want (0,2)", ed.cursor)
	}

	ed.cursor = p(0, 0)
	if _, ok := ops.Backspace(); ok {
		t.Fatal("backspace at document start should be a no-op")
	}
}

func TestBackspaceEmoji(t *testing.T) {
	const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	ed, ops := newFixture(p(0, 2), "a"+family+"b")
	c := mustChange(t)(ops.Backspace())
	checkLines(t, ed, "ab")
	if got := c.Op.Edit.(history.DeleteText).Text; got != family {
		t.Fatalf("deleted %q, want the whole cluster", got)
	}
}

func TestDeleteSelectionMultiLine(t *testing.T) {
	ed, ops := newFixture(p(0, 0), "abc", "def", "ghi")
	ed.sel = &selection.Selection{Anchor: p(2, 1), Cursor: p(0, 1)}
	c := mustChange(t)(ops.Backspace())
	checkLines(t, ed, "ahi")
	r := c.Op.Edit.(history.ReplaceRange)
	if r.OldText != "bc\ndef\ng" || r.NewText != "" {
		t.Fatalf("edit = %+v", r)
	}
	history.Reverse(ed.buf, r)
	checkLines(t, ed, "abc", "def", "ghi")
}

func TestInsertTextMultiLine(t *testing.T) {
	ed, ops := newFixture(p(0, 1), "ab")
	c := mustChange(t)(ops.InsertText("1\r\n2"))
	checkLines(t, ed, "a1", "2b")
	if ed.cursor != p(1, 1) {
		t.Fatalf("cursor = %v, want (1,1)", ed.cursor)
	}
	if _, ok := c.Op.Edit.(history.ReplaceRange); !ok {
		t.Fatalf("edit = %T, want ReplaceRange", c.Op.Edit)
	}

	c = mustChange(t)(ops.InsertText("xy"))
	if diff := cmp.Diff(history.InsertText{Line: 1, Col: 1, Text: "xy"}, c.Op.Edit); diff != "" {
		t.Fatalf("edit mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceSelection(t *testing.T) {
	ed, ops := newFixture(p(0, 0), "one two")
	ed.sel = &selection.Selection{Anchor: p(0, 4), Cursor: p(0, 7)}
	mustChange(t)(ops.ReplaceSelection("2\n3"))
	checkLines(t, ed, "one 2", "3")
	if ed.cursor != p(1, 1) {
		t.Fatalf("cursor = %v, want (1,1)", ed.cursor)
	}
	if _, ok := ops.ReplaceSelection(""); ok {
		t.Fatal("empty replace without selection should be a no-op")
	}
}
