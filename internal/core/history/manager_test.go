package history

import (
	"testing"
	"time"

	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/google/go-cmp/cmp"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1000, 0)} }

func newTestManager(max int) (*Manager, *fakeClock) {
	clk := newFakeClock()
	return NewManager(max, WithClock(clk)), clk
}

func typed(line, col int, text string) EditOperation {
	return EditOperation{
		Edit:         InsertText{Line: line, Col: col, Text: text},
		CursorBefore: types.Position{Line: line, Col: col},
		CursorAfter:  types.Position{Line: line, Col: col + len(text)},
	}
}

func backspaced(line, col int, text string) EditOperation {
	return EditOperation{
		Edit:         DeleteText{Line: line, Col: col, Text: text},
		CursorBefore: types.Position{Line: line, Col: col + 1},
		CursorAfter:  types.Position{Line: line, Col: col},
	}
}

func TestGroupingWithinThreshold(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	clk.Advance(100 * time.Millisecond)
	m.Push(typed(0, 1, "b"))
	clk.Advance(100 * time.Millisecond)
	m.Push(typed(0, 2, "c"))

	stack := m.UndoStack()
	if len(stack) != 1 {
		t.Fatalf("undo entries = %d, want 1", len(stack))
	}
	want := EditOperation{
		Edit:         InsertText{Line: 0, Col: 0, Text: "abc"},
		CursorBefore: types.Position{Line: 0, Col: 0},
		CursorAfter:  types.Position{Line: 0, Col: 3},
	}
	if diff := cmp.Diff(want, stack[0]); diff != "" {
		t.Fatalf("merged op mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupingBrokenByPause(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	clk.Advance(10 * time.Millisecond)
	m.Push(typed(0, 1, "b"))
	clk.Advance(501 * time.Millisecond)
	m.Push(typed(0, 2, "c"))

	stack := m.UndoStack()
	if len(stack) != 2 {
		t.Fatalf("undo entries = %d, want 2", len(stack))
	}
	if got := stack[0].Edit.(InsertText).Text; got != "ab" {
		t.Errorf("first entry = %q, want ab", got)
	}
	if got := stack[1].Edit.(InsertText).Text; got != "c" {
		t.Errorf("second entry = %q, want c", got)
	}
}

func TestThresholdIsInclusive(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	clk.Advance(DefaultGroupThreshold)
	m.Push(typed(0, 1, "b"))
	if got := m.UndoLen(); got != 1 {
		t.Fatalf("undo entries = %d, want 1", got)
	}
}

func TestBackspaceGrouping(t *testing.T) {
	m, _ := newTestManager(0)
	m.Push(backspaced(0, 2, "c"))
	m.Push(backspaced(0, 1, "b"))
	m.Push(backspaced(0, 0, "a"))

	stack := m.UndoStack()
	if len(stack) != 1 {
		t.Fatalf("undo entries = %d, want 1", len(stack))
	}
	got := stack[0].Edit.(DeleteText)
	if got.Text != "abc" || got.Col != 0 {
		t.Fatalf("merged delete = %+v, want text abc at col 0", got)
	}
	if want := (types.Position{Line: 0, Col: 3}); stack[0].CursorBefore != want {
		t.Fatalf("CursorBefore = %v, want %v", stack[0].CursorBefore, want)
	}
	if want := (types.Position{Line: 0, Col: 0}); stack[0].CursorAfter != want {
		t.Fatalf("CursorAfter = %v, want %v", stack[0].CursorAfter, want)
	}
}

func TestGroupingGraphemeColumns(t *testing.T) {
	m, _ := newTestManager(0)
	m.Push(typed(0, 0, family))
	m.Push(typed(0, 1, "x"))
	if got := m.UndoLen(); got != 1 {
		t.Fatalf("undo entries = %d, want 1 (emoji is one column)", got)
	}
}

func TestFusedOperationsStayApart(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "e"))
	clk.Advance(10 * time.Millisecond)
	accent := typed(0, 1, acute)
	accent.CursorAfter = types.Position{Line: 0, Col: 1}
	accent.Fused = true
	m.Push(accent)
	clk.Advance(10 * time.Millisecond)
	m.Push(typed(0, 1, "x"))

	if got := m.UndoLen(); got != 3 {
		t.Fatalf("undo entries = %d, want 3", got)
	}
}

func TestNonMergeable(t *testing.T) {
	tests := []struct {
		name  string
		first EditOperation
		next  EditOperation
	}{
		{"non contiguous", typed(0, 0, "a"), typed(0, 5, "x")},
		{"different line", typed(0, 0, "a"), typed(1, 1, "b")},
		{"insert then delete", typed(0, 0, "a"), backspaced(0, 0, "a")},
		{"forward delete", backspaced(0, 3, "d"), backspaced(0, 3, "e")},
		{"line edits", EditOperation{Edit: InsertLine{Line: 0}}, EditOperation{Edit: InsertLine{Line: 1}}},
		{"replace", EditOperation{Edit: ReplaceRange{NewText: "a"}}, EditOperation{Edit: ReplaceRange{StartCol: 1, EndCol: 1, NewText: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(0)
			m.Push(tt.first)
			m.Push(tt.next)
			if got := m.UndoLen(); got != 2 {
				t.Fatalf("undo entries = %d, want 2", got)
			}
		})
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	const max = 5
	m, clk := newTestManager(max)
	for i := 0; i <= max; i++ {
		clk.Advance(time.Second)
		m.Push(typed(i, 0, "x"))
	}
	stack := m.UndoStack()
	if len(stack) != max {
		t.Fatalf("undo entries = %d, want %d", len(stack), max)
	}
	if got := Line(stack[0].Edit); got != 1 {
		t.Errorf("oldest retained line = %d, want 1", got)
	}
	if got := Line(stack[len(stack)-1].Edit); got != max {
		t.Errorf("newest line = %d, want %d", got, max)
	}
}

func TestUndoRedoMoveBetweenStacks(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	clk.Advance(time.Second)
	m.Push(typed(1, 0, "b"))

	op, ok := m.Undo()
	if !ok || Line(op.Edit) != 1 {
		t.Fatalf("Undo = %+v, %v", op, ok)
	}
	if m.UndoLen() != 1 || m.RedoLen() != 1 {
		t.Fatalf("stacks = %d/%d, want 1/1", m.UndoLen(), m.RedoLen())
	}
	redone, ok := m.Redo()
	if !ok {
		t.Fatal("Redo returned nothing")
	}
	if diff := cmp.Diff(op, redone); diff != "" {
		t.Fatalf("redo op mismatch (-want +got):\n%s", diff)
	}
	if !m.CanUndo() || m.CanRedo() {
		t.Fatal("after redo: want CanUndo and !CanRedo")
	}
}

func TestEmptyStacks(t *testing.T) {
	m, _ := newTestManager(0)
	if _, ok := m.Undo(); ok {
		t.Error("Undo on empty history returned an operation")
	}
	if _, ok := m.Redo(); ok {
		t.Error("Redo on empty history returned an operation")
	}
}

func TestPushInvalidatesRedo(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	m.Undo()
	clk.Advance(time.Millisecond)
	m.Push(typed(0, 0, "z"))
	if _, ok := m.Redo(); ok {
		t.Fatal("Redo after a new push returned an operation")
	}
	if got := m.RedoLen(); got != 0 {
		t.Fatalf("RedoLen = %d, want 0", got)
	}
}

func TestNoMergeAfterUndo(t *testing.T) {
	m, clk := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	clk.Advance(time.Second)
	m.Push(typed(0, 1, "b"))
	m.Undo()
	m.Push(typed(0, 1, "c"))
	if got := m.UndoLen(); got != 2 {
		t.Fatalf("undo entries = %d, want 2", got)
	}
}

func TestClear(t *testing.T) {
	m, _ := newTestManager(0)
	m.Push(typed(0, 0, "a"))
	m.Undo()
	m.Push(typed(0, 0, "b"))
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Fatal("Clear left entries behind")
	}
}

func TestDefaults(t *testing.T) {
	m := NewManager(-1, WithGroupThreshold(-time.Second))
	if m.MaxHistory() != DefaultMaxHistory {
		t.Errorf("MaxHistory = %d, want %d", m.MaxHistory(), DefaultMaxHistory)
	}
	if m.groupThreshold != DefaultGroupThreshold {
		t.Errorf("groupThreshold = %v, want %v", m.groupThreshold, DefaultGroupThreshold)
	}
}
