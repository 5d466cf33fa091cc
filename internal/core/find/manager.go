// Package find drives TextFind against the editor: directional search,
// highlights, replace and replace-all with undo.
package find

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core/history"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/textfind"
	"github.com/bethropolis/tidefind/internal/types"
)

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetSelection() []types.Range
	SetSelection(ranges []types.Range)
	GetEventManager() *event.Manager
	GetHistoryManager() *history.Manager
}

// Manager holds the find panel state and applies results to the editor.
type Manager struct {
	editor      EditorInterface
	mutex       sync.RWMutex
	settings    config.FindConfig
	findString  string
	replacement string
	lastCount   int
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface, settings config.FindConfig) *Manager {
	return &Manager{
		editor:   editor,
		settings: settings,
	}
}

// SetFindString sets the text or pattern to look for.
func (m *Manager) SetFindString(s string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.findString = s
}

// FindString returns the current find string.
func (m *Manager) FindString() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.findString
}

// SetReplacement sets the replacement text or template.
func (m *Manager) SetReplacement(s string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.replacement = s
}

// Replacement returns the replacement template.
func (m *Manager) Replacement() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.replacement
}

// Settings returns the find options.
func (m *Manager) Settings() config.FindConfig {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.settings
}

// SetSettings replaces the find options.
func (m *Manager) SetSettings(settings config.FindConfig) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.settings = settings
}

// LastCount is the match count of the last search.
func (m *Manager) LastCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.lastCount
}

// newTextFind snapshots the buffer and selection into a TextFind.
func (m *Manager) newTextFind() (*textfind.TextFind, config.FindConfig, string, error) {
	m.mutex.RLock()
	settings, findString, replacement := m.settings, m.findString, m.replacement
	m.mutex.RUnlock()

	text := m.editor.GetBuffer().String()
	selection := clampSelection(m.editor.GetSelection(), utf8.RuneCountInString(text))

	tf, err := textfind.New(text, findString, settings.Mode(), textfind.Options{
		InSelection:    settings.InSelection,
		SelectedRanges: selection,
	})
	if err != nil {
		return nil, settings, "", err
	}
	return tf, settings, replacement, nil
}

// clampSelection keeps the selection inside a document of n runes.
func clampSelection(ranges []types.Range, n int) []types.Range {
	out := make([]types.Range, 0, len(ranges))
	for _, r := range ranges {
		lower := min(max(r.Location, 0), n)
		upper := min(max(r.UpperBound(), lower), n)
		out = append(out, types.NewRange(lower, upper))
	}
	return out
}

// FindNext selects the next (or previous) match.
func (m *Manager) FindNext(forward bool) (textfind.FindResult, error) {
	tf, settings, _, err := m.newTextFind()
	if err != nil {
		return textfind.FindResult{}, err
	}

	var result textfind.FindResult
	if settings.InSelection {
		result = tf.FindInSelection(forward)
	} else {
		result = tf.Find(forward, settings.Wrap)
	}

	m.mutex.Lock()
	m.lastCount = result.Count
	m.mutex.Unlock()

	logger.DebugTagf("find", "FindNext(forward=%v): found=%v range=%v count=%d wrapped=%v",
		forward, result.Found, result.Range, result.Count, result.Wrapped)

	if !result.Found {
		return result, nil
	}
	m.editor.SetSelection([]types.Range{result.Range})
	if result.Wrapped {
		if em := m.editor.GetEventManager(); em != nil {
			em.Dispatch(event.TypeSearchWrapped, event.SearchWrappedData{Forward: forward})
		}
	}
	return result, nil
}

// Highlights returns the range of every match in scope.
func (m *Manager) Highlights() ([]types.Range, error) {
	tf, _, _, err := m.newTextFind()
	if err != nil {
		return nil, err
	}
	var ranges []types.Range
	tf.FindAll(func(matches []types.Range, stop *bool) {
		ranges = append(ranges, matches[0])
	})

	m.mutex.Lock()
	m.lastCount = len(ranges)
	m.mutex.Unlock()
	return ranges, nil
}

// Replace replaces the match inside the first selection, selects the new
// text and then moves to the next match. It reports whether a replacement
// was made; with nothing to replace it only searches.
func (m *Manager) Replace() (bool, error) {
	tf, _, replacement, err := m.newTextFind()
	if err != nil {
		return false, err
	}

	item, ok := tf.Replace(replacement)
	if !ok {
		_, err := m.FindNext(true)
		return false, err
	}

	buf := m.editor.GetBuffer()
	oldText, err := buf.TextInRange(item.Range)
	if err != nil {
		return false, fmt.Errorf("replace: %w", err)
	}
	after := types.Range{Location: item.Range.Location, Length: utf8.RuneCountInString(item.String)}
	change := history.Change{
		Edits:           []history.Edit{{Range: item.Range, OldText: oldText, NewText: item.String}},
		SelectionBefore: m.editor.GetSelection(),
		SelectionAfter:  []types.Range{after},
	}
	if err := m.editor.GetHistoryManager().Perform(change); err != nil {
		return false, fmt.Errorf("replace: %w", err)
	}
	logger.DebugTagf("find", "Replace: %v -> %q", item.Range, item.String)

	// Search on from the end of the replaced text.
	m.editor.SetSelection([]types.Range{{Location: after.UpperBound()}})
	result, err := m.FindNext(true)
	if err != nil {
		return true, err
	}
	if !result.Found {
		m.editor.SetSelection([]types.Range{after})
	}
	return true, nil
}

// ReplaceAll replaces every match in scope as one undoable change and
// returns the number of matches replaced. Cancelling ctx stops the run;
// scope ranges that were complete by then are still applied.
func (m *Manager) ReplaceAll(ctx context.Context) (int, error) {
	tf, settings, replacement, err := m.newTextFind()
	if err != nil {
		return 0, err
	}

	em := m.editor.GetEventManager()
	dispatch := func(t event.Type, data interface{}) {
		if em != nil {
			em.Dispatch(t, data)
		}
	}

	var scopeCounts []int
	found, spliced := 0, 0
	items, selected := tf.ReplaceAll(replacement, func(flag textfind.ReplaceFlag, stop *bool) {
		if ctx.Err() != nil {
			*stop = true
			return
		}
		switch flag.Kind {
		case textfind.FindProgress:
			found++
			dispatch(event.TypeFindProgress, event.ProgressData{Done: found})
		case textfind.FoundCount:
			scopeCounts = append(scopeCounts, flag.Count)
			dispatch(event.TypeFoundCount, event.FoundCountData{Count: flag.Count})
		case textfind.ReplacementProgress:
			spliced++
			dispatch(event.TypeReplacementProgress, event.ProgressData{Done: spliced})
		}
	})

	replaced := 0
	for i := 0; i < len(items) && i < len(scopeCounts); i++ {
		replaced += scopeCounts[i]
	}
	if ctx.Err() != nil {
		logger.Infof("Replace all cancelled after %d scope range(s)", len(items))
	}
	if replaced == 0 {
		return 0, nil
	}

	buf := m.editor.GetBuffer()
	edits := make([]history.Edit, 0, len(items))
	for _, item := range items {
		oldText, err := buf.TextInRange(item.Range)
		if err != nil {
			return 0, fmt.Errorf("replace all: %w", err)
		}
		if oldText == item.String {
			continue
		}
		edits = append(edits, history.Edit{Range: item.Range, OldText: oldText, NewText: item.String})
	}

	after := []types.Range{{Location: 0}}
	if settings.InSelection && len(selected) > 0 {
		after = selected
	}
	change := history.Change{Edits: edits, SelectionBefore: m.editor.GetSelection(), SelectionAfter: after}
	if err := m.editor.GetHistoryManager().Perform(change); err != nil {
		return 0, fmt.Errorf("replace all: %w", err)
	}

	logger.DebugTagf("find", "ReplaceAll: %d replacement(s) in %d edit(s)", replaced, len(edits))
	return replaced, nil
}

// Undo reverts the last change.
func (m *Manager) Undo() (bool, error) {
	return m.editor.GetHistoryManager().Undo()
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (bool, error) {
	return m.editor.GetHistoryManager().Redo()
}
