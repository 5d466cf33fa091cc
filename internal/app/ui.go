package app

import (
	"github.com/bethropolis/tidefind/internal/commands"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/tui"
)

// drawEditor clears the screen and redraws all components. While a
// replace-all runs only the status bar is drawn.
func (a *App) drawEditor() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	if !a.modeHandler.Busy() {
		a.refreshHighlights()
		a.updateStatusBarContent()
		tui.DrawBuffer(a.tuiManager, a.editor, a.highlights, a.activeTheme)
	}
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

func (a *App) refreshHighlights() {
	if !a.highlightsDirty.Swap(false) {
		return
	}
	a.highlights = nil
	if a.editor.GetFindManager().FindString() == "" {
		return
	}
	highlights, err := a.editor.GetFindManager().Highlights()
	if err != nil {
		logger.DebugTagf("app", "App: no highlights: %v", err)
		return
	}
	a.highlights = highlights
}

func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	fm := a.editor.GetFindManager()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetFindInfo(fm.FindString(), fm.Replacement(), commands.OptionNames(fm.Settings()), len(a.highlights))
}
