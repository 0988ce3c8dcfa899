package clipboard

import (
	"errors"
	"testing"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/core/selection"
	"github.com/bethropolis/quicknotepad/internal/core/text"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/google/go-cmp/cmp"
)

type fakeEditor struct {
	buf    *buffer.SliceBuffer
	cursor types.Position
	sel    *selection.Selection
}

func (f *fakeEditor) GetBuffer() buffer.Buffer     { return f.buf }
func (f *fakeEditor) GetCursor() types.Position    { return f.cursor }
func (f *fakeEditor) SetCursor(pos types.Position) { f.cursor = pos }
func (f *fakeEditor) GetScroll() int               { return 0 }
func (f *fakeEditor) ScrollDown(int)               {}
func (f *fakeEditor) AtBottomRow() bool            { return false }
func (f *fakeEditor) ClearSelection()              { f.sel = nil }

func (f *fakeEditor) GetSelection() (types.Position, types.Position, bool) {
	if f.sel == nil || !f.sel.IsActive() {
		return types.Position{}, types.Position{}, false
	}
	start, end := f.sel.Range()
	return start, end, true
}

type failingProvider struct{}

func (failingProvider) SetText(string) error     { return ErrUnavailable }
func (failingProvider) GetText() (string, error) { return "", ErrUnavailable }

func p(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func newFixture(provider Provider, lines ...string) (*fakeEditor, *Manager) {
	ed := &fakeEditor{buf: buffer.NewSliceBufferFromLines(lines)}
	return ed, NewManager(ed, text.NewOperations(ed), provider)
}

func TestCopy(t *testing.T) {
	reg := &RegisterProvider{}
	ed, m := newFixture(reg, "hello", "world")
	if m.Copy() {
		t.Fatal("Copy without a selection reported success")
	}
	ed.sel = &selection.Selection{Anchor: p(1, 2), Cursor: p(0, 3)}
	if !m.Copy() {
		t.Fatal("Copy failed")
	}
	got, _ := reg.GetText()
	if got != "lo\nwo" {
		t.Fatalf("clipboard = %q, want %q", got, "lo\nwo")
	}
	if ed.sel == nil {
		t.Fatal("Copy should keep the selection")
	}
}

func TestCutThenPaste(t *testing.T) {
	reg := &RegisterProvider{}
	ed, m := newFixture(reg, "hello", "world")
	ed.sel = &selection.Selection{Anchor: p(0, 3), Cursor: p(1, 2)}

	c, ok := m.Cut()
	if !ok {
		t.Fatal("Cut failed")
	}
	if diff := cmp.Diff([]string{"helrld"}, ed.buf.Lines()); diff != "" {
		t.Fatalf("after cut (-want +got):\n%s", diff)
	}
	if r := c.Op.Edit.(history.ReplaceRange); r.OldText != "lo\nwo" || r.NewText != "" {
		t.Fatalf("cut edit = %+v", r)
	}

	ed.cursor = p(0, 6)
	c, ok = m.Paste()
	if !ok {
		t.Fatal("Paste failed")
	}
	if diff := cmp.Diff([]string{"helrldlo", "wo"}, ed.buf.Lines()); diff != "" {
		t.Fatalf("after paste (-want +got):\n%s", diff)
	}
	if ed.cursor != p(1, 2) {
		t.Fatalf("cursor = %v, want (1,2)", ed.cursor)
	}
	history.Reverse(ed.buf, c.Op.Edit)
	if diff := cmp.Diff([]string{"helrld"}, ed.buf.Lines()); diff != "" {
		t.Fatalf("after undo of paste (-want +got):\n%s", diff)
	}
}

func TestPasteOverSelection(t *testing.T) {
	reg := &RegisterProvider{}
	_ = reg.SetText("X")
	ed, m := newFixture(reg, "abcdef")
	ed.sel = &selection.Selection{Anchor: p(0, 1), Cursor: p(0, 4)}
	c, ok := m.Paste()
	if !ok {
		t.Fatal("Paste failed")
	}
	if got := ed.buf.Lines()[0]; got != "aXef" {
		t.Fatalf("line = %q, want aXef", got)
	}
	r := c.Op.Edit.(history.ReplaceRange)
	if r.OldText != "bcd" || r.NewText != "X" {
		t.Fatalf("edit = %+v", r)
	}
}

func TestUnavailableClipboardIsNoOp(t *testing.T) {
	ed, m := newFixture(failingProvider{}, "hello")
	ed.sel = &selection.Selection{Anchor: p(0, 0), Cursor: p(0, 5)}
	if _, ok := m.Cut(); ok {
		t.Fatal("Cut with a failing clipboard reported success")
	}
	if got := ed.buf.Lines()[0]; got != "hello" {
		t.Fatalf("failed cut modified the buffer: %q", got)
	}
	if _, ok := m.Paste(); ok {
		t.Fatal("Paste with a failing clipboard reported success")
	}
}

func TestSystemProviderErrorsWrapUnavailable(t *testing.T) {
	// Headless CI usually has no clipboard utility; either way errors must wrap ErrUnavailable.
	var sp SystemProvider
	if err := sp.SetText("x"); err != nil && !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetText error %v does not wrap ErrUnavailable", err)
	}
	if _, err := sp.GetText(); err != nil && !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetText error %v does not wrap ErrUnavailable", err)
	}
}

func TestNewProviderFallback(t *testing.T) {
	if _, ok := NewProvider(false).(*RegisterProvider); !ok {
		t.Fatal("NewProvider(false) should be the in-process register")
	}
}
