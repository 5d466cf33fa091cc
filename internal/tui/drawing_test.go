package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/core"
	"github.com/bethropolis/tidefind/internal/theme"
	"github.com/bethropolis/tidefind/internal/types"
)

func newSimTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	tu, err := NewWithScreen(sim, &theme.DevComfortDark)
	require.NoError(t, err)
	t.Cleanup(tu.Close)
	sim.SetSize(w, h)
	return tu, sim
}

func cellAt(sim tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, w, _ := sim.GetContents()
	return cells[y*w+x]
}

func TestInRanges(t *testing.T) {
	ranges := []types.Range{{Location: 2, Length: 2}, {Location: 8, Length: 1}}
	assert.False(t, inRanges(ranges, 1))
	assert.True(t, inRanges(ranges, 3))
	assert.False(t, inRanges(ranges, 4))
	assert.True(t, inRanges(ranges, 8))
	assert.False(t, inRanges(nil, 0))
}

func TestDrawBuffer_HighlightsAndSelection(t *testing.T) {
	tu, sim := newSimTUI(t, 20, 4)
	ed := core.NewEditor(buffer.NewFromString("cat dog\n\tcat"), nil, nil)
	ed.SetViewSize(20, 4)
	ed.SetSelection([]types.Range{{Location: 4, Length: 3}})

	highlights := []types.Range{{Location: 0, Length: 3}, {Location: 9, Length: 3}}
	DrawBuffer(tu, ed, highlights, &theme.DevComfortDark)
	sim.Show()

	search := theme.DevComfortDark.GetStyle(theme.StyleSearchHighlight)
	selection := theme.DevComfortDark.GetStyle(theme.StyleSelection)

	// gutter is "1 " (2 cells)
	assert.Equal(t, []rune("1"), cellAt(sim, 0, 0).Runes)
	c := cellAt(sim, 2, 0)
	assert.Equal(t, []rune("c"), c.Runes)
	assert.Equal(t, search, c.Style)
	d := cellAt(sim, 6, 0)
	assert.Equal(t, []rune("d"), d.Runes)
	assert.Equal(t, selection, d.Style)

	// tab expands to 4 cells, then the highlighted "cat"
	c2 := cellAt(sim, 6, 1)
	assert.Equal(t, []rune("c"), c2.Runes)
	assert.Equal(t, search, c2.Style)
}

func TestDrawBuffer_Caret(t *testing.T) {
	tu, sim := newSimTUI(t, 20, 4)
	ed := core.NewEditor(buffer.NewFromString("ab\ncd"), nil, nil)
	ed.SetViewSize(20, 4)
	ed.SetSelection([]types.Range{{Location: 2}})

	DrawBuffer(tu, ed, nil, nil)
	sim.Show()

	x, y, visible := sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)
}
