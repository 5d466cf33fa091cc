// Package history provides undo/redo of edit batches.
package history

import (
	"unicode/utf8"

	"github.com/bethropolis/tidefind/internal/types"
)

// Edit replaces the text at Range (pre-edit offsets) with NewText.
type Edit struct {
	Range   types.Range
	OldText string
	NewText string
}

// Change is one undoable operation: a set of disjoint edits in ascending
// order and the selections around it.
type Change struct {
	Edits           []Edit
	SelectionBefore []types.Range
	SelectionAfter  []types.Range
}

// appliedRanges returns where each edit's NewText ends up once every edit of
// the batch has been applied.
func (c Change) appliedRanges() []types.Range {
	ranges := make([]types.Range, len(c.Edits))
	delta := 0
	for i, e := range c.Edits {
		n := utf8.RuneCountInString(e.NewText)
		ranges[i] = types.Range{Location: e.Range.Location + delta, Length: n}
		delta += n - e.Range.Length
	}
	return ranges
}
