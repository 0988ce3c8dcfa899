package highlighter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/types"
)

func hasStyle(ranges []types.StyledRange, start, end int, style string) bool {
	for _, r := range ranges {
		if r.StartCol == start && r.EndCol == end && r.StyleName == style {
			return true
		}
	}
	return false
}

func TestHighlightGo(t *testing.T) {
	buf := buffer.NewSliceBufferFromLines([]string{
		"package main",
		"",
		"// héllo",
		"func main() {",
		"\ts := `a",
		"b`",
		"}",
	})
	h := NewHighlighter()
	result, tree, err := h.HighlightBuffer(context.Background(), buf, "main.go", nil)
	if err != nil {
		t.Fatalf("HighlightBuffer() error = %v", err)
	}
	if tree == nil {
		t.Fatal("tree-sitter highlighting should return a tree")
	}
	defer tree.Close()

	checks := []struct {
		line       int
		start, end int
		style      string
	}{
		{0, 0, 7, "keyword"},
		{2, 0, 8, "comment"},
		{3, 0, 4, "keyword"},
		{3, 5, 9, "function"},
		{4, 6, 8, "string"},
		{5, 0, 2, "string"},
	}
	for _, c := range checks {
		if !hasStyle(result[c.line], c.start, c.end, c.style) {
			t.Errorf("line %d: missing %s %d..%d in %+v", c.line, c.style, c.start, c.end, result[c.line])
		}
	}
}

func TestIncrementalReparse(t *testing.T) {
	buf := buffer.NewSliceBufferFromLines([]string{"package main", "var x = 1"})
	h := NewHighlighter()
	_, tree, err := h.HighlightBuffer(context.Background(), buf, "x.go", nil)
	if err != nil {
		t.Fatal(err)
	}
	info, err := buf.Insert(types.Position{Line: 1, Col: 9}, "23")
	if err != nil {
		t.Fatal(err)
	}
	tree.Edit(info.InputEdit())

	result, newTree, err := h.HighlightBuffer(context.Background(), buf, "x.go", tree)
	if err != nil {
		t.Fatal(err)
	}
	defer newTree.Close()
	tree.Close()
	if !hasStyle(result[1], 8, 11, "number") {
		t.Errorf("line 1 = %+v, want number 8..11", result[1])
	}
}

func TestHighlightFallsBackToLexer(t *testing.T) {
	buf := buffer.NewSliceBufferFromLines([]string{"var x = 'hi';"})
	h := NewHighlighter()
	result, tree, err := h.HighlightBuffer(context.Background(), buf, "app.js", nil)
	if err != nil {
		t.Fatal(err)
	}
	if tree != nil {
		t.Error("lexer highlighting should not return a tree")
	}
	if !hasStyle(result[0], 0, 3, "keyword") {
		t.Errorf("line 0 = %+v, want keyword 0..3", result[0])
	}
	if !hasStyle(result[0], 8, 12, "string") {
		t.Errorf("line 0 = %+v, want string 8..12", result[0])
	}
}

func TestHighlightUnknownType(t *testing.T) {
	buf := buffer.NewSliceBufferFromLines([]string{"plain words"})
	h := NewHighlighter()
	for _, path := range []string{"", "notes.unknownext"} {
		result, _, err := h.HighlightBuffer(context.Background(), buf, path, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(result) != 0 {
			t.Errorf("%q: got highlights %+v", path, result)
		}
	}
}

func TestAddSpanMultiLine(t *testing.T) {
	lines := []string{"ab/*cd", "middle", "x*/y"}
	result := make(HighlightResult)
	addSpan(result, lines, sitter.Point{Row: 0, Column: 2}, sitter.Point{Row: 2, Column: 3}, "comment")
	want := HighlightResult{
		0: {{StartCol: 2, EndCol: 6, StyleName: "comment"}},
		1: {{StartCol: 0, EndCol: 6, StyleName: "comment"}},
		2: {{StartCol: 0, EndCol: 3, StyleName: "comment"}},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("addSpan() mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureNameToStyleName(t *testing.T) {
	tests := map[string]string{
		"keyword":         "keyword",
		"@string.escape":  "string",
		"function.method": "function",
	}
	for in, want := range tests {
		if got := captureNameToStyleName(in); got != want {
			t.Errorf("captureNameToStyleName(%q) = %q, want %q", in, got, want)
		}
	}
}
