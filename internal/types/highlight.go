package types

// HighlightType distinguishes the kinds of non-syntax highlight.
type HighlightType int

const (
	HighlightSearch HighlightType = iota
	HighlightSearchCurrent
)

// HighlightRegion is a span to be highlighted on screen, in grapheme columns.
// End is exclusive.
type HighlightRegion struct {
	Start Position
	End   Position
	Type  HighlightType
}

// StyledRange is a syntax-highlighted run on a single line.
// StartCol and EndCol are grapheme columns; EndCol is exclusive.
// StyleName is a theme key such as "keyword" or "comment".
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}
