// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core"
	"github.com/bethropolis/tidefind/internal/theme"
	"github.com/bethropolis/tidefind/internal/types"
)

const tabWidth = 4

// inRanges reports whether offset lies in one of the sorted ranges.
func inRanges(ranges []types.Range, offset int) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].UpperBound() > offset })
	return i < len(ranges) && ranges[i].Contains(offset)
}

// lineStartOffset returns the rune offset of the first rune of line.
func lineStartOffset(lines [][]byte, line int) int {
	offset := 0
	for i := 0; i < line && i < len(lines); i++ {
		offset += utf8.RuneCount(lines[i]) + 1
	}
	return offset
}

// gutterWidth is the line number column plus one space; 0 when it does not fit.
func gutterWidth(lineCount, width int) int {
	if lineCount == 0 {
		lineCount = 1
	}
	w := int(math.Log10(float64(lineCount))) + 2
	if w >= width {
		return 0
	}
	return w
}

// DrawBuffer draws the visible lines with match highlights and the selection.
// highlights must be sorted and non-overlapping.
func DrawBuffer(t *TUI, editor *core.Editor, highlights []types.Range, th *theme.Theme) {
	if th == nil {
		th = &theme.DevComfortDark
	}
	defaultStyle := th.GetStyle(theme.StyleDefault)
	lineNumberStyle := th.GetStyle(theme.StyleLineNumber)
	selectionStyle := th.GetStyle(theme.StyleSelection)
	searchStyle := th.GetStyle(theme.StyleSearchHighlight)

	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}
	screen := t.screen

	lines := editor.GetBuffer().Lines()
	viewY := editor.ViewportY
	selection := editor.GetSelection()
	gutter := gutterWidth(len(lines), width)

	offset := lineStartOffset(lines, viewY)
	cursorX, cursorY := -1, -1
	caret := -1
	if len(selection) > 0 && selection[0].Length == 0 {
		caret = selection[0].Location
	}

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := viewY + screenY
		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			num := fmt.Sprintf("%*d", gutter-1, lineIdx+1)
			for i, r := range num {
				screen.SetContent(i, screenY, r, nil, lineNumberStyle)
			}
		}

		line := string(lines[lineIdx])
		visualX := 0
		runeOffset := offset
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			if runes[0] == '\t' {
				clusterWidth = tabWidth - visualX%tabWidth
			}

			style := defaultStyle
			if inRanges(highlights, runeOffset) {
				style = searchStyle
			}
			if inRanges(selection, runeOffset) {
				style = selectionStyle
			}
			if runeOffset == caret {
				cursorX, cursorY = gutter+visualX, screenY
			}

			screenX := gutter + visualX
			if screenX+clusterWidth > width {
				break
			}
			if runes[0] == '\t' {
				for i := 0; i < clusterWidth; i++ {
					screen.SetContent(screenX+i, screenY, ' ', nil, style)
				}
			} else {
				screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
			}

			visualX += clusterWidth
			runeOffset += len(runes)
		}
		// Caret at end of line
		if caret == offset+utf8.RuneCountInString(line) && gutter+visualX < width {
			cursorX, cursorY = gutter+visualX, screenY
		}
		offset += utf8.RuneCountInString(line) + 1
	}

	if cursorX >= 0 {
		screen.ShowCursor(cursorX, cursorY)
	} else {
		screen.HideCursor()
	}
}
