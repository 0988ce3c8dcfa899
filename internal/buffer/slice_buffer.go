package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
)

// SliceBuffer stores the document as a flat slice of lines.
type SliceBuffer struct {
	lines    []string
	filePath string
	modified bool
}

// NewSliceBuffer creates a buffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: []string{""}}
}

// NewSliceBufferFromLines creates a buffer holding a copy of lines.
func NewSliceBufferFromLines(lines []string) *SliceBuffer {
	sb := NewSliceBuffer()
	if len(lines) > 0 {
		sb.lines = append([]string(nil), lines...)
	}
	return sb
}

// splitLines turns file content into lines. A final newline does not start a new line.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// Load reads a file into the buffer, replacing existing content.
// A file that does not exist yields an empty document bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = []string{""}
			sb.filePath = filePath
			sb.modified = false
			logger.Debugf("Load: '%s' does not exist, starting empty", filePath)
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	sb.lines = splitLines(string(data))
	sb.filePath = filePath
	sb.modified = false
	logger.Debugf("Load: read %d lines from '%s'", len(sb.lines), filePath)
	return nil
}

// contentLines returns the lines up to the last non-empty one.
func (sb *SliceBuffer) contentLines() []string {
	last := len(sb.lines) - 1
	for last >= 0 && sb.lines[last] == "" {
		last--
	}
	return sb.lines[:last+1]
}

// Save writes the document to filePath, or to the bound path when filePath is empty.
// Trailing empty lines are not written.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := sb.contentLines()
	var out bytes.Buffer
	for _, line := range content {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	logger.Debugf("Save: wrote %d lines to '%s'", len(content), path)
	return nil
}

// Lines returns the live line slice. Callers must not modify it.
func (sb *SliceBuffer) Lines() []string {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) (string, error) {
	if index < 0 || index >= len(sb.lines) {
		return "", fmt.Errorf("%w: %d (0-%d)", ErrLineOutOfRange, index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// LineLen returns the grapheme length of a line, or 0 when out of range.
func (sb *SliceBuffer) LineLen(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utils.GraphemeLen(sb.lines[index])
}

// Bytes returns the whole document joined by "\n".
func (sb *SliceBuffer) Bytes() []byte {
	return []byte(strings.Join(sb.lines, "\n"))
}

func (sb *SliceBuffer) FilePath() string          { return sb.filePath }
func (sb *SliceBuffer) SetFilePath(path string)   { sb.filePath = path }
func (sb *SliceBuffer) IsModified() bool          { return sb.modified }
func (sb *SliceBuffer) SetModified(modified bool) { sb.modified = modified }

// --- Position helpers ---

// clamp validates the line and clamps the column. It returns the byte offset of the column.
func (sb *SliceBuffer) clamp(pos types.Position) (types.Position, int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return pos, 0, fmt.Errorf("%w: %d", ErrLineOutOfRange, pos.Line)
	}
	line := sb.lines[pos.Line]
	pos.Col = utils.ClampCol(line, pos.Col)
	return pos, utils.GraphemeToByteOffset(line, pos.Col), nil
}

// byteIndex returns the absolute byte offset of the start of a line.
func (sb *SliceBuffer) byteIndex(line int) uint32 {
	var n int
	for i := 0; i < line && i < len(sb.lines); i++ {
		n += len(sb.lines[i]) + 1
	}
	return uint32(n)
}

// EndOf returns the position just past text when inserted at start.
func (sb *SliceBuffer) EndOf(start types.Position, text string) types.Position {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return types.Position{Line: start.Line, Col: start.Col + utils.GraphemeLen(text)}
	}
	return types.Position{Line: start.Line + len(parts) - 1, Col: utils.GraphemeLen(parts[len(parts)-1])}
}

// --- Modification ---

// Insert inserts text at pos. The column is clamped to the line; the line must exist.
func (sb *SliceBuffer) Insert(pos types.Position, text string) (types.EditInfo, error) {
	vPos, byteOffset, err := sb.clamp(pos)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid insert position: %w", err)
	}
	if text == "" {
		return types.EditInfo{}, nil
	}

	startIndex := sb.byteIndex(vPos.Line) + uint32(byteOffset)
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    startIndex,
		NewEndIndex:    startIndex + uint32(len(text)),
		StartPosition:  sitter.Point{Row: uint32(vPos.Line), Column: uint32(byteOffset)},
		OldEndPosition: sitter.Point{Row: uint32(vPos.Line), Column: uint32(byteOffset)},
	}

	current := sb.lines[vPos.Line]
	head, tail := current[:byteOffset], current[byteOffset:]
	parts := strings.Split(text, "\n")

	if len(parts) == 1 {
		sb.lines[vPos.Line] = head + text + tail
		info.NewEndPosition = sitter.Point{Row: uint32(vPos.Line), Column: uint32(byteOffset + len(text))}
	} else {
		last := len(parts) - 1
		newLines := make([]string, len(parts))
		newLines[0] = head + parts[0]
		copy(newLines[1:last], parts[1:last])
		newLines[last] = parts[last] + tail

		rebuilt := make([]string, 0, len(sb.lines)+last)
		rebuilt = append(rebuilt, sb.lines[:vPos.Line]...)
		rebuilt = append(rebuilt, newLines...)
		rebuilt = append(rebuilt, sb.lines[vPos.Line+1:]...)
		sb.lines = rebuilt
		info.NewEndPosition = sitter.Point{Row: uint32(vPos.Line + last), Column: uint32(len(parts[last]))}
	}

	sb.modified = true
	return info, nil
}

// Delete removes [start, end). The endpoints may be given in either order.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	start, end = types.OrderPositions(start, end)
	vStart, startOffset, err := sb.clamp(start)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid delete range: %w", err)
	}
	if end.Line >= len(sb.lines) {
		end = types.Position{Line: len(sb.lines) - 1, Col: sb.LineLen(len(sb.lines) - 1)}
	}
	vEnd, endOffset, err := sb.clamp(end)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid delete range: %w", err)
	}
	if vStart == vEnd {
		return types.EditInfo{}, nil
	}

	return sb.deleteBytes(vStart.Line, startOffset, vEnd.Line, endOffset), nil
}

// deleteBytes removes everything from byte startOff of startLine up to byte
// endOff of endLine.
func (sb *SliceBuffer) deleteBytes(startLine, startOff, endLine, endOff int) types.EditInfo {
	lineStart := sb.byteIndex(startLine)
	info := types.EditInfo{
		StartIndex:     lineStart + uint32(startOff),
		OldEndIndex:    sb.byteIndex(endLine) + uint32(endOff),
		NewEndIndex:    lineStart + uint32(startOff),
		StartPosition:  sitter.Point{Row: uint32(startLine), Column: uint32(startOff)},
		OldEndPosition: sitter.Point{Row: uint32(endLine), Column: uint32(endOff)},
		NewEndPosition: sitter.Point{Row: uint32(startLine), Column: uint32(startOff)},
	}

	merged := sb.lines[startLine][:startOff] + sb.lines[endLine][endOff:]
	if startLine == endLine {
		sb.lines[startLine] = merged
	} else {
		rebuilt := make([]string, 0, len(sb.lines)-(endLine-startLine))
		rebuilt = append(rebuilt, sb.lines[:startLine]...)
		rebuilt = append(rebuilt, merged)
		rebuilt = append(rebuilt, sb.lines[endLine+1:]...)
		sb.lines = rebuilt
	}

	sb.modified = true
	return info
}

// RemoveText deletes text that an Insert of text at pos put into the buffer.
// Matching is by bytes, so text that fused with the grapheme before pos, such
// as a combining mark or the second half of a flag, is found inside that
// grapheme and removed without touching its neighbour.
func (sb *SliceBuffer) RemoveText(pos types.Position, text string) (types.EditInfo, error) {
	vPos, offset, err := sb.clamp(pos)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid remove position: %w", err)
	}
	if text == "" {
		return types.EditInfo{}, nil
	}

	lowest := utils.GraphemeToByteOffset(sb.lines[vPos.Line], vPos.Col-1)
	for start := offset; start == offset || start > lowest; start-- {
		if endLine, endOff, ok := sb.matchAt(vPos.Line, start, text); ok {
			return sb.deleteBytes(vPos.Line, start, endLine, endOff), nil
		}
	}
	return types.EditInfo{}, fmt.Errorf("%w: %q at %d:%d", ErrTextMismatch, text, vPos.Line, vPos.Col)
}

// matchAt reports whether text occurs at byte off of line and where it ends.
func (sb *SliceBuffer) matchAt(line, off int, text string) (int, int, bool) {
	parts := strings.Split(text, "\n")
	last := len(parts) - 1
	if line+last >= len(sb.lines) {
		return 0, 0, false
	}
	head := sb.lines[line][off:]
	if last == 0 {
		return line, off + len(text), strings.HasPrefix(head, text)
	}
	if head != parts[0] {
		return 0, 0, false
	}
	for i := 1; i < last; i++ {
		if sb.lines[line+i] != parts[i] {
			return 0, 0, false
		}
	}
	return line + last, len(parts[last]), strings.HasPrefix(sb.lines[line+last], parts[last])
}

// Text returns [start, end) with lines joined by "\n". Positions are clamped.
func (sb *SliceBuffer) Text(start, end types.Position) string {
	start, end = types.OrderPositions(start, end)
	if start.Line < 0 {
		start = types.Position{}
	}
	if start.Line >= len(sb.lines) {
		return ""
	}
	if end.Line >= len(sb.lines) {
		end = types.Position{Line: len(sb.lines) - 1, Col: sb.LineLen(len(sb.lines) - 1)}
	}
	if start.Line == end.Line {
		return utils.GraphemeSlice(sb.lines[start.Line], start.Col, end.Col)
	}

	var b strings.Builder
	first := sb.lines[start.Line]
	b.WriteString(utils.GraphemeSlice(first, start.Col, utils.GraphemeLen(first)))
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteByte('\n')
		b.WriteString(sb.lines[i])
	}
	b.WriteByte('\n')
	b.WriteString(utils.GraphemeSlice(sb.lines[end.Line], 0, end.Col))
	return b.String()
}

var _ Buffer = (*SliceBuffer)(nil)
