package find

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/types"
)

type fakeEditor struct{ buf buffer.Buffer }

func (f fakeEditor) GetBuffer() buffer.Buffer { return f.buf }

func newManager(lines ...string) *Manager {
	return NewManager(fakeEditor{buf: buffer.NewSliceBufferFromLines(lines)})
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		query string
		want  []Match
	}{
		{"empty query", []string{"abc"}, "", nil},
		{"no match", []string{"abc"}, "x", nil},
		{"case insensitive", []string{"Foo bar", "FOO"}, "foo", []Match{{0, 0, 3}, {1, 0, 3}}},
		{"overlapping", []string{"aaaa"}, "aa", []Match{{0, 0, 2}, {0, 1, 2}, {0, 2, 2}}},
		{"grapheme columns", []string{"é👍 hi"}, "hi", []Match{{0, 3, 2}}},
		{"wide query", []string{"a世界b世界"}, "世界", []Match{{0, 1, 2}, {0, 4, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAll(buffer.NewSliceBufferFromLines(tt.lines), tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchPicksClosestAtOrAfter(t *testing.T) {
	m := newManager("x one", "x two", "x three")
	if n := m.Search("x", types.Position{Line: 1, Col: 1}); n != 3 {
		t.Fatalf("Search() = %d, want 3", n)
	}
	got, idx, total, ok := m.Current()
	if !ok || idx != 2 || total != 3 || got != (Match{2, 0, 1}) {
		t.Fatalf("Current() = %v %d %d %v", got, idx, total, ok)
	}

	m.Search("x", types.Position{Line: 2, Col: 5})
	if _, idx, _, _ := m.Current(); idx != 0 {
		t.Fatalf("past the last match should wrap to 0, got %d", idx)
	}

	m.Search("x", types.Position{Line: 1, Col: 0})
	if _, idx, _, _ := m.Current(); idx != 1 {
		t.Fatalf("match at the cursor should be current, got %d", idx)
	}
}

func TestNextPrevWrap(t *testing.T) {
	m := newManager("ab ab ab")
	m.Search("ab", types.Position{})
	var got []int
	for i := 0; i < 4; i++ {
		match, _ := m.Next()
		got = append(got, match.Col)
	}
	if diff := cmp.Diff([]int{3, 6, 0, 3}, got); diff != "" {
		t.Errorf("Next() columns mismatch (-want +got):\n%s", diff)
	}
	got = nil
	for i := 0; i < 3; i++ {
		match, _ := m.Prev()
		got = append(got, match.Col)
	}
	if diff := cmp.Diff([]int{0, 6, 3}, got); diff != "" {
		t.Errorf("Prev() columns mismatch (-want +got):\n%s", diff)
	}
}

func TestNoMatches(t *testing.T) {
	m := newManager("abc")
	if n := m.Search("zzz", types.Position{}); n != 0 {
		t.Fatalf("Search() = %d, want 0", n)
	}
	if _, ok := m.Next(); ok {
		t.Error("Next() with no matches reported ok")
	}
	if _, _, total, ok := m.Current(); ok || total != 0 {
		t.Errorf("Current() = total %d ok %v", total, ok)
	}
	if !m.Active() {
		t.Error("a query without matches is still active")
	}
}

func TestHighlightRegionsAndClear(t *testing.T) {
	m := newManager("foo foo")
	m.Search("foo", types.Position{Line: 0, Col: 2})
	want := []types.HighlightRegion{
		{Start: types.Position{Line: 0, Col: 0}, End: types.Position{Line: 0, Col: 3}, Type: types.HighlightSearch},
		{Start: types.Position{Line: 0, Col: 4}, End: types.Position{Line: 0, Col: 7}, Type: types.HighlightSearchCurrent},
	}
	if diff := cmp.Diff(want, m.HighlightRegions()); diff != "" {
		t.Errorf("HighlightRegions() mismatch (-want +got):\n%s", diff)
	}
	m.Clear()
	if m.Active() || len(m.HighlightRegions()) != 0 {
		t.Error("Clear() left search state behind")
	}
	if n := m.Refresh(types.Position{}); n != 0 {
		t.Errorf("Refresh() after Clear = %d, want 0", n)
	}
}

func TestRefreshAfterEdit(t *testing.T) {
	buf := buffer.NewSliceBufferFromLines([]string{"cat"})
	m := NewManager(fakeEditor{buf: buf})
	m.Search("cat", types.Position{})
	if _, err := buf.Insert(types.Position{Line: 0, Col: 3}, " cat"); err != nil {
		t.Fatal(err)
	}
	if n := m.Refresh(types.Position{Line: 0, Col: 1}); n != 2 {
		t.Fatalf("Refresh() = %d, want 2", n)
	}
	if match, _, _, _ := m.Current(); match.Col != 4 {
		t.Errorf("current match col = %d, want 4", match.Col)
	}
}
