package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/types"
)

type fakeEditor struct {
	buf       *buffer.SliceBuffer
	selection []types.Range
	events    *event.Manager
}

func (f *fakeEditor) GetBuffer() buffer.Buffer           { return f.buf }
func (f *fakeEditor) SetSelection(ranges []types.Range) { f.selection = ranges }
func (f *fakeEditor) GetEventManager() *event.Manager   { return f.events }

func newFakeEditor(text string) *fakeEditor {
	return &fakeEditor{buf: buffer.NewFromString(text), events: event.NewManager()}
}

func batch() Change {
	// "one two three" -> "1 two 333"
	return Change{
		Edits: []Edit{
			{Range: types.Range{Location: 0, Length: 3}, OldText: "one", NewText: "1"},
			{Range: types.Range{Location: 8, Length: 5}, OldText: "three", NewText: "333"},
		},
		SelectionBefore: []types.Range{{Location: 8, Length: 5}},
		SelectionAfter:  []types.Range{{Location: 6, Length: 3}},
	}
}

func TestPerformUndoRedo(t *testing.T) {
	ed := newFakeEditor("one two three")
	m := NewManager(ed, 0)

	var modified []event.BufferModifiedData
	ed.events.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		modified = append(modified, e.Data.(event.BufferModifiedData))
		return false
	})

	require.NoError(t, m.Perform(batch()))
	assert.Equal(t, "1 two 333", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 6, Length: 3}}, ed.selection)
	assert.Len(t, modified, 2)
	assert.Equal(t, 8, modified[0].Range.Location, "highest edit goes first")

	ok, err := m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one two three", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 8, Length: 5}}, ed.selection)
	assert.True(t, m.CanRedo())

	ok, err = m.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1 two 333", ed.buf.String())
	assert.False(t, m.CanRedo())
}

func TestUndoRedo_Empty(t *testing.T) {
	m := NewManager(newFakeEditor("x"), 0)

	ok, err := m.Undo()
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Redo()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordChange_TruncatesRedoAndEvicts(t *testing.T) {
	ed := newFakeEditor("abc")
	m := NewManager(ed, 2)

	edit := func(loc int, old, new string) Change {
		return Change{Edits: []Edit{{Range: types.Range{Location: loc, Length: len(old)}, OldText: old, NewText: new}}}
	}

	require.NoError(t, m.Perform(edit(0, "a", "A")))
	require.NoError(t, m.Perform(edit(1, "b", "B")))
	require.NoError(t, m.Perform(edit(2, "c", "C")))
	assert.Equal(t, "ABC", ed.buf.String())

	// Only two changes are kept.
	_, _ = m.Undo()
	_, _ = m.Undo()
	ok, _ := m.Undo()
	assert.False(t, ok)
	assert.Equal(t, "Abc", ed.buf.String())

	require.NoError(t, m.Perform(edit(2, "c", "z")))
	assert.False(t, m.CanRedo())
	assert.Equal(t, "Abz", ed.buf.String())

	m.Clear()
	assert.False(t, m.CanUndo())
}
