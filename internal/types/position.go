// internal/types/position.go
package types

// Position is a line/column location in a buffer.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

