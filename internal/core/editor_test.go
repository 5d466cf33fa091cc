package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/types"
)

func newTestEditor(t *testing.T, text string) (*Editor, *event.Manager) {
	t.Helper()
	em := event.NewManager()
	return NewEditor(buffer.NewFromString(text), nil, em), em
}

func TestSetSelection_DispatchesAndCopies(t *testing.T) {
	ed, em := newTestEditor(t, "alpha beta")

	var got []types.Range
	em.Subscribe(event.TypeSelectionChanged, func(e event.Event) bool {
		got = e.Data.(event.SelectionChangedData).Ranges
		return false
	})

	sel := []types.Range{{Location: 6, Length: 4}}
	ed.SetSelection(sel)
	sel[0].Location = 0

	assert.Equal(t, []types.Range{{Location: 6, Length: 4}}, ed.GetSelection())
	assert.Equal(t, []types.Range{{Location: 6, Length: 4}}, got)

	ed.SetSelection(nil)
	assert.Equal(t, []types.Range{{Location: 0}}, ed.GetSelection())
}

func TestScrollToSelection(t *testing.T) {
	ed, _ := newTestEditor(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	ed.SetViewSize(20, 4) // 3 text lines + status bar

	ed.SetSelection([]types.Range{{Location: 14}}) // line 7
	assert.Equal(t, 5, ed.ViewportY)

	ed.SetSelection([]types.Range{{Location: 2}}) // line 1
	assert.Equal(t, 1, ed.ViewportY)

	ed.Scroll(-10)
	assert.Equal(t, 0, ed.ViewportY)
	ed.Scroll(100)
	assert.Equal(t, 9, ed.ViewportY)
}

func TestYankSelection(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	ed, _ := newTestEditor(t, "one two three")

	ok, err := ed.YankSelection()
	require.NoError(t, err)
	assert.False(t, ok, "caret only")

	ed.SetSelection([]types.Range{{Location: 0, Length: 3}, {Location: 8, Length: 5}})
	ok, err = ed.YankSelection()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one\nthree", copied)
}

func TestFindReplaceUndoThroughEditor(t *testing.T) {
	ed, _ := newTestEditor(t, "cat dog cat")
	fm := ed.GetFindManager()
	fm.SetFindString("cat")
	fm.SetReplacement("cow")

	n, err := fm.ReplaceAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "cow dog cow", ed.GetBuffer().String())

	ok, err := fm.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cat dog cat", ed.GetBuffer().String())
}
