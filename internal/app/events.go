package app

import (
	"github.com/bethropolis/tidefind/internal/event"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeFoundCount, a.handleFoundCount)
	a.eventManager.Subscribe(event.TypeReplacementProgress, a.handleReplacementProgress)
}

// handleBufferModified may run on the replace-all goroutine; it only marks
// state for the next draw.
func (a *App) handleBufferModified(e event.Event) bool {
	a.highlightsDirty.Store(true)
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleSelectionChanged(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handleFoundCount(e event.Event) bool {
	if data, ok := e.Data.(event.FoundCountData); ok {
		a.statusBar.SetTemporaryMessage("Found %d, replacing... (Esc to cancel)", data.Count)
		a.requestRedraw()
	}
	return false
}

func (a *App) handleReplacementProgress(e event.Event) bool {
	if data, ok := e.Data.(event.ProgressData); ok && data.Done%1000 == 0 {
		a.statusBar.SetTemporaryMessage("Replaced %d... (Esc to cancel)", data.Done)
		a.requestRedraw()
	}
	return false
}
