package buffer

import (
	"errors"

	"github.com/bethropolis/quicknotepad/internal/types"
)

// ErrLineOutOfRange is returned when a position names a line the buffer does not have.
var ErrLineOutOfRange = errors.New("buffer: line index out of range")

// ErrTextMismatch is returned by RemoveText when the text is not at the position.
var ErrTextMismatch = errors.New("buffer: text not found at position")

// Buffer is an ordered sequence of line strings. Columns are grapheme indices.
// A Buffer always holds at least one line.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error

	Lines() []string
	Line(index int) (string, error)
	LineCount() int
	LineLen(index int) int

	// Insert splices text (which may contain newlines) at pos.
	Insert(pos types.Position, text string) (types.EditInfo, error)
	// Delete removes the range [start, end).
	Delete(start, end types.Position) (types.EditInfo, error)
	// RemoveText deletes text previously inserted at pos, matching it byte for byte.
	RemoveText(pos types.Position, text string) (types.EditInfo, error)
	// Text returns the content of [start, end), lines joined by "\n".
	Text(start, end types.Position) string
	// EndOf returns the position just past text when inserted at start.
	EndOf(start types.Position, text string) types.Position

	Bytes() []byte
	FilePath() string
	SetFilePath(path string)
	IsModified() bool
	SetModified(modified bool)
}
