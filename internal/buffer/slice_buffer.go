// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/tidefind/internal/types"
)

// SliceBuffer stores the document as lines without their trailing '\n'.
// A file ending in a newline has an empty last line, so saving reproduces it.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// NewFromString creates a SliceBuffer holding text.
func NewFromString(text string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.setContent([]byte(text))
	return sb
}

func (sb *SliceBuffer) setContent(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = append([]byte(nil), p...)
	}
}

// Load reads a file into the buffer. A missing file gives an empty buffer
// bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			sb.modified = false
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	sb.setContent(content)
	sb.filePath = filePath
	sb.modified = false
	return nil
}

// Save writes the buffer to filePath, or to the loaded path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}
	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) FilePath() string { return sb.filePath }

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool { return sb.modified }

func (sb *SliceBuffer) Lines() [][]byte { return sb.lines }

func (sb *SliceBuffer) LineCount() int { return len(sb.lines) }

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines with '\n'.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

func (sb *SliceBuffer) String() string {
	return string(sb.Bytes())
}

// RuneCount is the length of the document in runes.
func (sb *SliceBuffer) RuneCount() int {
	n := len(sb.lines) - 1 // line breaks
	for _, line := range sb.lines {
		n += utf8.RuneCount(line)
	}
	return n
}

// OffsetToPosition converts a rune offset to a line/column position.
func (sb *SliceBuffer) OffsetToPosition(offset int) (types.Position, error) {
	if offset < 0 {
		return types.Position{}, fmt.Errorf("offset %d out of bounds", offset)
	}
	remaining := offset
	for i, line := range sb.lines {
		n := utf8.RuneCount(line)
		if remaining <= n {
			return types.Position{Line: i, Col: remaining}, nil
		}
		remaining -= n + 1
	}
	return types.Position{}, fmt.Errorf("offset %d out of bounds (length %d)", offset, sb.RuneCount())
}

// PositionToOffset converts a position to a rune offset. The column may not
// go past the end of its line.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) (int, error) {
	if pos.Line < 0 || pos.Line >= len(sb.lines) {
		return 0, fmt.Errorf("line index %d out of bounds (0-%d)", pos.Line, len(sb.lines)-1)
	}
	if pos.Col < 0 || pos.Col > utf8.RuneCount(sb.lines[pos.Line]) {
		return 0, fmt.Errorf("column %d out of bounds on line %d", pos.Col, pos.Line)
	}
	offset := 0
	for _, line := range sb.lines[:pos.Line] {
		offset += utf8.RuneCount(line) + 1
	}
	return offset + pos.Col, nil
}

// TextInRange returns the text covered by r.
func (sb *SliceBuffer) TextInRange(r types.Range) (string, error) {
	start, end, err := sb.rangePositions(r)
	if err != nil {
		return "", err
	}
	startOff := runeIndexToByteOffset(sb.lines[start.Line], start.Col)
	endOff := runeIndexToByteOffset(sb.lines[end.Line], end.Col)
	if start.Line == end.Line {
		return string(sb.lines[start.Line][startOff:endOff]), nil
	}
	var b bytes.Buffer
	b.Write(sb.lines[start.Line][startOff:])
	for _, line := range sb.lines[start.Line+1 : end.Line] {
		b.WriteByte('\n')
		b.Write(line)
	}
	b.WriteByte('\n')
	b.Write(sb.lines[end.Line][:endOff])
	return b.String(), nil
}

// Replace swaps the text covered by r for text.
func (sb *SliceBuffer) Replace(r types.Range, text string) error {
	start, end, err := sb.rangePositions(r)
	if err != nil {
		return fmt.Errorf("invalid replace range: %w", err)
	}
	sb.delete(start, end)
	sb.insert(start, []byte(text))
	if r.Length > 0 || text != "" {
		sb.modified = true
	}
	return nil
}

func (sb *SliceBuffer) rangePositions(r types.Range) (start, end types.Position, err error) {
	if r.Location < 0 || r.Length < 0 {
		return start, end, fmt.Errorf("range %v out of bounds", r)
	}
	if start, err = sb.OffsetToPosition(r.Location); err != nil {
		return start, end, err
	}
	if end, err = sb.OffsetToPosition(r.UpperBound()); err != nil {
		return start, end, err
	}
	return start, end, nil
}

// insert puts text at a validated position, splitting lines on '\n'.
func (sb *SliceBuffer) insert(pos types.Position, text []byte) {
	if len(text) == 0 {
		return
	}
	current := sb.lines[pos.Line]
	byteOffset := runeIndexToByteOffset(current, pos.Col)
	tail := append([]byte(nil), current[byteOffset:]...)
	insertLines := bytes.Split(text, []byte("\n"))

	sb.lines[pos.Line] = append(current[:byteOffset:byteOffset], insertLines[0]...)
	if len(insertLines) == 1 {
		sb.lines[pos.Line] = append(sb.lines[pos.Line], tail...)
		return
	}

	newLines := make([][]byte, len(insertLines)-1)
	for i, l := range insertLines[1:] {
		newLines[i] = append([]byte(nil), l...)
	}
	newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)

	rest := append([][]byte(nil), sb.lines[pos.Line+1:]...)
	sb.lines = append(append(sb.lines[:pos.Line+1], newLines...), rest...)
}

// delete removes [start, end) between validated positions.
func (sb *SliceBuffer) delete(start, end types.Position) {
	if start == end {
		return
	}
	startLine := sb.lines[start.Line]
	endLine := sb.lines[end.Line]
	startOff := runeIndexToByteOffset(startLine, start.Col)
	endOff := runeIndexToByteOffset(endLine, end.Col)

	merged := append(append([]byte(nil), startLine[:startOff]...), endLine[endOff:]...)
	sb.lines[start.Line] = merged
	if end.Line > start.Line {
		sb.lines = append(sb.lines[:start.Line+1], sb.lines[end.Line+1:]...)
	}
}

// runeIndexToByteOffset clamps to the end of the line.
func runeIndexToByteOffset(line []byte, runeIndex int) int {
	offset := 0
	for i := 0; i < runeIndex && offset < len(line); i++ {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
