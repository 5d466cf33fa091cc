// internal/core/editor.go
package core

import (
	"sync"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core/find"
	"github.com/bethropolis/tidefind/internal/core/history"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/types"
)

// Editor ties a buffer to its selection, history and find state.
type Editor struct {
	buffer     buffer.Buffer
	selection  []types.Range
	ViewportY  int // Top visible line index (0-based)
	viewWidth  int
	viewHeight int // Excludes the status bar
	mutex      sync.RWMutex

	eventManager   *event.Manager
	historyManager *history.Manager
	findManager    *find.Manager
}

// NewEditor creates an editor over buf. A nil eventManager is allowed.
func NewEditor(buf buffer.Buffer, cfg *config.Config, eventManager *event.Manager) *Editor {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	e := &Editor{
		buffer:       buf,
		selection:    []types.Range{{Location: 0}},
		eventManager: eventManager,
	}
	e.historyManager = history.NewManager(e, cfg.UI.MaxHistory)
	e.findManager = find.NewManager(e, cfg.Find)
	return e
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetEventManager returns the event bus, possibly nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetHistoryManager returns the undo stack.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// GetFindManager returns the find manager.
func (e *Editor) GetFindManager() *find.Manager {
	return e.findManager
}

// GetSelection returns a copy of the selected ranges in document order.
func (e *Editor) GetSelection() []types.Range {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	out := make([]types.Range, len(e.selection))
	copy(out, e.selection)
	return out
}

// SetSelection replaces the selection. An empty list becomes a caret at 0.
func (e *Editor) SetSelection(ranges []types.Range) {
	if len(ranges) == 0 {
		ranges = []types.Range{{Location: 0}}
	}
	e.mutex.Lock()
	e.selection = make([]types.Range, len(ranges))
	copy(e.selection, ranges)
	e.mutex.Unlock()

	logger.DebugTagf("editor", "Editor: Selection set to %v", ranges)
	e.ScrollToSelection()
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Ranges: e.GetSelection()})
	}
}

// SelectedText returns the text of every non-empty selected range.
func (e *Editor) SelectedText() ([]string, error) {
	var texts []string
	for _, r := range e.GetSelection() {
		if r.Length == 0 {
			continue
		}
		text, err := e.buffer.TextInRange(r)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.mutex.Lock()
	e.viewWidth = width
	if height > config.StatusBarHeight {
		e.viewHeight = height - config.StatusBarHeight
	} else {
		e.viewHeight = 0
	}
	e.mutex.Unlock()
	e.ScrollToSelection()
}

// ViewSize returns the text area size.
func (e *Editor) ViewSize() (int, int) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.viewWidth, e.viewHeight
}

// ScrollToSelection moves the viewport so the first selected range is visible.
func (e *Editor) ScrollToSelection() {
	sel := e.GetSelection()
	if len(sel) == 0 {
		return
	}
	pos, err := e.buffer.OffsetToPosition(sel[0].Location)
	if err != nil {
		return
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.viewHeight <= 0 {
		return
	}
	if pos.Line < e.ViewportY {
		e.ViewportY = pos.Line
	} else if pos.Line >= e.ViewportY+e.viewHeight {
		e.ViewportY = pos.Line - e.viewHeight + 1
	}
}

// Scroll moves the viewport by delta lines, clamped to the buffer.
func (e *Editor) Scroll(delta int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	maxY := max(e.buffer.LineCount()-1, 0)
	e.ViewportY = min(max(e.ViewportY+delta, 0), maxY)
}

// SaveBuffer writes the buffer to its file.
func (e *Editor) SaveBuffer() error {
	path := e.buffer.FilePath()
	if err := e.buffer.Save(path); err != nil {
		return err
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	}
	return nil
}
