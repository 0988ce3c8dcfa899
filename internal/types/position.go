package types

// Position is a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based grapheme index within the line, not a byte offset.
type Position struct {
	Line int
	Col  int
}

// Compare orders positions by line, then column.
// It returns -1, 0 or +1.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

// Less reports whether p comes before o in document order.
func (p Position) Less(o Position) bool { return p.Compare(o) < 0 }

// OrderPositions returns a and b sorted into document order.
func OrderPositions(a, b Position) (Position, Position) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// Within reports whether p lies in the half-open range [start, end).
func (p Position) Within(start, end Position) bool {
	return p.Compare(start) >= 0 && p.Compare(end) < 0
}
