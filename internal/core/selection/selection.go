// Package selection tracks the anchor/cursor pair of a text selection.
package selection

import "github.com/bethropolis/quicknotepad/internal/types"

// Selection is an anchor (where selecting began) and a live cursor end.
type Selection struct {
	Anchor types.Position
	Cursor types.Position
}

// IsActive reports whether the selection covers any text.
func (s Selection) IsActive() bool {
	return s.Anchor != s.Cursor
}

// Range returns the endpoints in document order, whichever one is the anchor.
func (s Selection) Range() (start, end types.Position) {
	return types.OrderPositions(s.Anchor, s.Cursor)
}

// Contains reports whether pos lies inside the half-open selected range.
func (s Selection) Contains(pos types.Position) bool {
	start, end := s.Range()
	return pos.Within(start, end)
}
