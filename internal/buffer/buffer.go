// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/tidefind/internal/types"

// Buffer is the editable document the find manager works on.
// Offsets are runes; a line break counts as one rune.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	FilePath() string
	IsModified() bool

	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	String() string
	RuneCount() int

	OffsetToPosition(offset int) (types.Position, error)
	PositionToOffset(pos types.Position) (int, error)
	TextInRange(r types.Range) (string, error)
	Replace(r types.Range, text string) error
}
