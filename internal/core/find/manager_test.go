package find

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core/history"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/textfind"
	"github.com/bethropolis/tidefind/internal/types"
)

type fakeEditor struct {
	buf       *buffer.SliceBuffer
	selection []types.Range
	events    *event.Manager
	history   *history.Manager
}

func (f *fakeEditor) GetBuffer() buffer.Buffer            { return f.buf }
func (f *fakeEditor) GetSelection() []types.Range         { return f.selection }
func (f *fakeEditor) SetSelection(r []types.Range)        { f.selection = r }
func (f *fakeEditor) GetEventManager() *event.Manager     { return f.events }
func (f *fakeEditor) GetHistoryManager() *history.Manager { return f.history }

func newTestManager(t *testing.T, text string, settings config.FindConfig, sel ...types.Range) (*Manager, *fakeEditor) {
	t.Helper()
	if len(sel) == 0 {
		sel = []types.Range{{Location: 0}}
	}
	ed := &fakeEditor{buf: buffer.NewFromString(text), selection: sel, events: event.NewManager()}
	ed.history = history.NewManager(ed, 10)
	return NewManager(ed, settings), ed
}

func TestFindNext_WrapsAndDispatches(t *testing.T) {
	m, ed := newTestManager(t, "a b a", config.FindConfig{Wrap: true}, types.Range{Location: 5})
	m.SetFindString("a")

	wrapped := 0
	ed.events.Subscribe(event.TypeSearchWrapped, func(e event.Event) bool {
		assert.True(t, e.Data.(event.SearchWrappedData).Forward)
		wrapped++
		return false
	})

	res, err := m.FindNext(true)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Wrapped)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []types.Range{{Location: 0, Length: 1}}, ed.selection)
	assert.Equal(t, 1, wrapped)
	assert.Equal(t, 2, m.LastCount())

	res, err = m.FindNext(true)
	require.NoError(t, err)
	assert.False(t, res.Wrapped)
	assert.Equal(t, []types.Range{{Location: 4, Length: 1}}, ed.selection)

	res, err = m.FindNext(false)
	require.NoError(t, err)
	assert.Equal(t, types.Range{Location: 0, Length: 1}, res.Range)
}

func TestFindNext_NoWrap(t *testing.T) {
	m, ed := newTestManager(t, "a b a", config.FindConfig{}, types.Range{Location: 5})
	m.SetFindString("a")

	res, err := m.FindNext(true)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []types.Range{{Location: 5}}, ed.selection, "selection kept")
}

func TestFindNext_InSelection(t *testing.T) {
	m, ed := newTestManager(t, "x1 x2 x3 x4", config.FindConfig{InSelection: true, Wrap: true},
		types.Range{Location: 3, Length: 5})
	m.SetFindString("x")

	res, err := m.FindNext(false)
	require.NoError(t, err)
	assert.Equal(t, types.Range{Location: 6, Length: 1}, res.Range)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []types.Range{{Location: 6, Length: 1}}, ed.selection)
}

func TestFindNext_Errors(t *testing.T) {
	m, _ := newTestManager(t, "abc", config.FindConfig{Regex: true})

	_, err := m.FindNext(true)
	assert.ErrorIs(t, err, textfind.ErrEmptyFindString)

	m.SetFindString("(")
	_, err = m.Highlights()
	var reErr *textfind.RegularExpressionError
	assert.ErrorAs(t, err, &reErr)
}

func TestHighlights(t *testing.T) {
	m, _ := newTestManager(t, "Cat cat CAT", config.FindConfig{IgnoreCase: true})
	m.SetFindString("cat")

	ranges, err := m.Highlights()
	require.NoError(t, err)
	assert.Equal(t, []types.Range{
		{Location: 0, Length: 3},
		{Location: 4, Length: 3},
		{Location: 8, Length: 3},
	}, ranges)
	assert.Equal(t, 3, m.LastCount())
}

func TestReplace_AndFindNext(t *testing.T) {
	m, ed := newTestManager(t, "foo bar foo", config.FindConfig{Wrap: true}, types.Range{Location: 0, Length: 3})
	m.SetFindString("foo")
	m.SetReplacement("x")

	ok, err := m.Replace()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x bar foo", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 6, Length: 3}}, ed.selection)

	ok, err = m.Replace()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x bar x", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 6, Length: 1}}, ed.selection, "no more matches: replaced text stays selected")

	ok, err = m.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x bar foo", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 6, Length: 3}}, ed.selection)
}

func TestReplace_NothingSelectedSearches(t *testing.T) {
	m, ed := newTestManager(t, "foo bar foo", config.FindConfig{Wrap: true})
	m.SetFindString("bar")
	m.SetReplacement("x")

	ok, err := m.Replace()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "foo bar foo", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 4, Length: 3}}, ed.selection)
}

func TestReplaceAll_RegexUndoRedo(t *testing.T) {
	m, ed := newTestManager(t, "user@host\nroot@box", config.FindConfig{Regex: true})
	m.SetFindString(`(\w+)@(\w+)`)
	m.SetReplacement("$2:$1")

	var found, scopes, spliced int
	ed.events.Subscribe(event.TypeFindProgress, func(event.Event) bool { found++; return false })
	ed.events.Subscribe(event.TypeFoundCount, func(e event.Event) bool {
		scopes++
		assert.Equal(t, 2, e.Data.(event.FoundCountData).Count)
		return false
	})
	ed.events.Subscribe(event.TypeReplacementProgress, func(event.Event) bool { spliced++; return false })

	n, err := m.ReplaceAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "host:user\nbox:root", ed.buf.String())
	assert.Equal(t, 2, found)
	assert.Equal(t, 1, scopes)
	assert.Equal(t, 2, spliced)

	_, err = m.Undo()
	require.NoError(t, err)
	assert.Equal(t, "user@host\nroot@box", ed.buf.String())

	_, err = m.Redo()
	require.NoError(t, err)
	assert.Equal(t, "host:user\nbox:root", ed.buf.String())
}

func TestReplaceAll_InSelectionShiftsSelection(t *testing.T) {
	m, ed := newTestManager(t, "aa bb aa bb aa", config.FindConfig{InSelection: true},
		types.Range{Location: 0, Length: 5}, types.Range{Location: 9, Length: 5})
	m.SetFindString("aa")
	m.SetReplacement("A")

	n, err := m.ReplaceAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "A bb aa bb A", ed.buf.String())
	assert.Equal(t, []types.Range{{Location: 0, Length: 4}, {Location: 8, Length: 4}}, ed.selection)
}

func TestReplaceAll_NoMatches(t *testing.T) {
	m, ed := newTestManager(t, "abc", config.FindConfig{})
	m.SetFindString("zzz")
	m.SetReplacement("y")

	n, err := m.ReplaceAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, ed.history.CanUndo())
}

func TestReplaceAll_Cancelled(t *testing.T) {
	m, ed := newTestManager(t, "a a a", config.FindConfig{})
	m.SetFindString("a")
	m.SetReplacement("b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := m.ReplaceAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "a a a", ed.buf.String())
}

func TestClampSelection(t *testing.T) {
	got := clampSelection([]types.Range{{Location: -2, Length: 4}, {Location: 8, Length: 5}}, 10)
	assert.Equal(t, []types.Range{{Location: 0, Length: 2}, {Location: 8, Length: 2}}, got)
}
