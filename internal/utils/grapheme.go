package utils

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Columns (Col) throughout the editor are grapheme indices. The helpers in
// this file convert them to byte offsets and perform grapheme-safe string
// surgery. Every index argument is clamped to [0, GraphemeLen(s)].

// GraphemeLen returns the number of user-perceived characters in s.
func GraphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeToByteOffset converts a grapheme index to a byte offset in s.
// Indices past the end return len(s).
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// ByteOffsetToGrapheme converts a byte offset to the index of the grapheme
// containing it. Offsets past the end return GraphemeLen(s).
func ByteOffsetToGrapheme(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	n := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		end := len(s) - len(rest)
		if offset < end && offset >= end-len(cluster) {
			return n
		}
		n++
	}
	return n
}

// GraphemesBefore returns how many graphemes start before byte offset off.
// An offset inside a cluster counts that cluster, which makes the result the
// column just past whatever ends at off.
func GraphemesBefore(s string, off int) int {
	if off > len(s) {
		off = len(s)
	}
	if off <= 0 {
		return 0
	}
	return ByteOffsetToGrapheme(s, off-1) + 1
}

// GraphemeAt returns the cluster at idx, or false when idx is out of range.
func GraphemeAt(s string, idx int) (string, bool) {
	if idx < 0 {
		return "", false
	}
	n := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if n == idx {
			return cluster, true
		}
		n++
	}
	return "", false
}

// GraphemeSlice returns the graphemes in [start, end), clamped.
func GraphemeSlice(s string, start, end int) string {
	if end <= start {
		return ""
	}
	from := GraphemeToByteOffset(s, start)
	to := GraphemeToByteOffset(s, end)
	if to <= from {
		return ""
	}
	return s[from:to]
}

// SplitAtGrapheme splits s before the grapheme at idx.
func SplitAtGrapheme(s string, idx int) (before, after string) {
	off := GraphemeToByteOffset(s, idx)
	return s[:off], s[off:]
}

// InsertAtGrapheme inserts text before the grapheme at idx.
func InsertAtGrapheme(s string, idx int, text string) string {
	before, after := SplitAtGrapheme(s, idx)
	return before + text + after
}

// RemoveGraphemeAt removes the single grapheme at idx. It returns s unchanged
// and false when idx is out of range.
func RemoveGraphemeAt(s string, idx int) (string, string, bool) {
	removed, ok := GraphemeAt(s, idx)
	if !ok {
		return s, "", false
	}
	off := GraphemeToByteOffset(s, idx)
	return s[:off] + s[off+len(removed):], removed, true
}

// RemoveGraphemes removes up to count graphemes starting at idx and returns
// the new string together with the removed text.
func RemoveGraphemes(s string, idx, count int) (string, string) {
	if count <= 0 {
		return s, ""
	}
	if idx < 0 {
		idx = 0
	}
	from := GraphemeToByteOffset(s, idx)
	to := GraphemeToByteOffset(s, idx+count)
	return s[:from] + s[to:], s[from:to]
}

// ClampCol clamps a grapheme column to [0, GraphemeLen(s)].
func ClampCol(s string, col int) int {
	if col <= 0 {
		return 0
	}
	if n := GraphemeLen(s); col > n {
		return n
	}
	return col
}

// CellWidth returns the number of terminal cells a cluster occupies when drawn
// at display column x. Tabs advance to the next multiple of tabWidth;
// zero-width clusters count as one cell.
func CellWidth(cluster string, x, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			return 1
		}
		return tabWidth - x%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		return 1
	}
	return w
}

// VisualWidth returns the display width of the first col graphemes of s.
// Pass col < 0 for the width of the whole string.
func VisualWidth(s string, col, tabWidth int) int {
	width := 0
	n := 0
	rest := s
	state := -1
	for len(rest) > 0 && (col < 0 || n < col) {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		width += CellWidth(cluster, width, tabWidth)
		n++
	}
	return width
}

// ColumnAtVisual maps a display cell offset back to a grapheme column. A cell
// inside a wide cluster or tab resolves to that cluster. Offsets past the end
// of the line resolve to GraphemeLen(s).
func ColumnAtVisual(s string, visual, tabWidth int) int {
	if visual <= 0 {
		return 0
	}
	width := 0
	n := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := CellWidth(cluster, width, tabWidth)
		if visual < width+w {
			return n
		}
		width += w
		n++
	}
	return n
}
