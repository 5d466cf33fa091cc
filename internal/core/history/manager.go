package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetSelection(ranges []types.Range)
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // Index of the next change to Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Perform applies change to the buffer and records it.
func (m *Manager) Perform(change Change) error {
	if len(change.Edits) == 0 {
		return nil
	}
	ranges := make([]types.Range, len(change.Edits))
	texts := make([]string, len(change.Edits))
	for i, e := range change.Edits {
		ranges[i], texts[i] = e.Range, e.NewText
	}
	if err := m.apply(ranges, texts); err != nil {
		return err
	}
	m.RecordChange(change)
	m.editor.SetSelection(change.SelectionAfter)
	return nil
}

// RecordChange adds a change that has already been applied, clearing any
// redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}
	m.changes = append(m.changes, change)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "History: Recorded change with %d edit(s). Index: %d, Count: %d", len(change.Edits), m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.Debugf("History: Nothing to undo.")
		return false, nil
	}

	change := m.changes[m.currentIndex-1]
	texts := make([]string, len(change.Edits))
	for i, e := range change.Edits {
		texts[i] = e.OldText
	}
	if err := m.apply(change.appliedRanges(), texts); err != nil {
		return false, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--
	m.editor.SetSelection(change.SelectionBefore)

	logger.DebugTagf("history", "History: Undid change %d", m.currentIndex)
	return true, nil
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.Debugf("History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return false, nil
	}

	change := m.changes[m.currentIndex]
	ranges := make([]types.Range, len(change.Edits))
	texts := make([]string, len(change.Edits))
	for i, e := range change.Edits {
		ranges[i], texts[i] = e.Range, e.NewText
	}
	if err := m.apply(ranges, texts); err != nil {
		return false, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++
	m.editor.SetSelection(change.SelectionAfter)

	logger.DebugTagf("history", "History: Redid change. New currentIndex=%d", m.currentIndex)
	return true, nil
}

// apply replaces ranges[i] with texts[i], highest offset first so the
// remaining ranges stay valid.
func (m *Manager) apply(ranges []types.Range, texts []string) error {
	buf := m.editor.GetBuffer()
	eventMgr := m.editor.GetEventManager()
	for i := len(ranges) - 1; i >= 0; i-- {
		if err := buf.Replace(ranges[i], texts[i]); err != nil {
			return err
		}
		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
				Range:     ranges[i],
				NewLength: len([]rune(texts[i])),
			})
		}
	}
	return nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
