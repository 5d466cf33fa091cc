package modehandler

import (
	"context"

	"github.com/bethropolis/tidefind/internal/commands"
	"github.com/bethropolis/tidefind/internal/input"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/textfind"
)

// handleActionNormal executes an action in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	if actionEvent.Action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	fm := mh.editor.GetFindManager()

	switch actionEvent.Action {
	case input.ActionQuit:
		_ = mh.Quit(false)

	case input.ActionSave:
		if err := mh.Save(""); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		}

	case input.ActionFindNext:
		mh.FindNext(true)
	case input.ActionFindPrevious:
		mh.FindNext(false)

	case input.ActionReplace:
		replaced, err := fm.Replace()
		switch {
		case err != nil:
			mh.reportFindError(err)
		case replaced:
			mh.statusBar.SetTemporaryMessage("Replaced 1 match")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing to replace in the selection")
		}

	case input.ActionReplaceAll:
		mh.ReplaceAll()

	case input.ActionUndo:
		if ok, err := fm.Undo(); err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
		} else if !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if ok, err := fm.Redo(); err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
		} else if !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionCopySelection:
		ok, err := mh.editor.YankSelection()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		case ok:
			mh.statusBar.SetTemporaryMessage("Selection copied")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected")
		}

	case input.ActionToggleIgnoreCase:
		mh.toggle("icase")
	case input.ActionToggleFullWord:
		mh.toggle("word")
	case input.ActionToggleRegex:
		mh.toggle("regex")
	case input.ActionToggleInSelection:
		mh.toggle("insel")

	case input.ActionScrollUp:
		mh.editor.Scroll(-1)
	case input.ActionScrollDown:
		mh.editor.Scroll(1)
	case input.ActionPageUp:
		_, h := mh.editor.ViewSize()
		mh.editor.Scroll(-max(h, 1))
	case input.ActionPageDown:
		_, h := mh.editor.ViewSize()
		mh.editor.Scroll(max(h, 1))

	case input.ActionEditFind:
		mh.enterPrompt(ModeFind, fm.FindString())
	case input.ActionEditReplacement:
		mh.enterPrompt(ModeReplacement, "")
	case input.ActionEnterCommandMode:
		mh.enterPrompt(ModeCommand, "")

	default:
		return false
	}
	return true
}

// toggle flips a find option by its ":set" name.
func (mh *ModeHandler) toggle(name string) {
	settings := mh.FindSettings()
	on := false
	for _, n := range commands.OptionNames(settings) {
		if n == name {
			on = true
		}
	}
	arg := name
	if on {
		arg = "no" + name
	}
	if err := commands.SetOption(&settings, arg); err != nil {
		logger.Errorf("ModeHandler: toggle %s: %v", name, err)
		return
	}
	mh.SetFindSettings(settings)
	mh.statusBar.SetTemporaryMessage("%s", arg)
}

func (mh *ModeHandler) reportFindError(err error) {
	if hint := textfind.RecoverySuggestion(err); hint != "" {
		mh.statusBar.SetTemporaryMessage("%s", hint)
		return
	}
	mh.statusBar.SetTemporaryMessage("Error: %v", err)
}

// FindNext selects the next or previous match and reports the outcome.
func (mh *ModeHandler) FindNext(forward bool) {
	fm := mh.editor.GetFindManager()
	res, err := fm.FindNext(forward)
	if err != nil {
		mh.reportFindError(err)
		return
	}
	switch {
	case !res.Found:
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", fm.FindString())
	case res.Wrapped && forward:
		mh.statusBar.SetTemporaryMessage("Search hit BOTTOM, continuing at TOP")
	case res.Wrapped:
		mh.statusBar.SetTemporaryMessage("Search hit TOP, continuing at BOTTOM")
	}
}

// ReplaceAll starts a replace-all in the background. Esc cancels it.
func (mh *ModeHandler) ReplaceAll() {
	mh.mu.Lock()
	if mh.busy {
		mh.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(mh.ctx)
	mh.busy = true
	mh.cancelReplace = cancel
	mh.wg.Add(1)
	mh.mu.Unlock()

	mh.statusBar.SetTemporaryMessage("Replacing... (Esc to cancel)")
	fm := mh.editor.GetFindManager()

	go func() {
		defer mh.wg.Done()
		n, err := fm.ReplaceAll(ctx)
		cancelled := ctx.Err() != nil
		cancel()

		mh.mu.Lock()
		mh.busy = false
		mh.cancelReplace = nil
		mh.mu.Unlock()

		switch {
		case err != nil:
			mh.reportFindError(err)
		case cancelled:
			mh.statusBar.SetTemporaryMessage("Replace all cancelled; %d replaced", n)
		case n == 0:
			mh.statusBar.SetTemporaryMessage("Pattern not found: %s", fm.FindString())
		default:
			mh.statusBar.SetTemporaryMessage("Replaced %d %s", n, plural(n, "match", "matches"))
		}
		logger.DebugTagf("mode", "ModeHandler: replace all done n=%d cancelled=%v err=%v", n, cancelled, err)
		mh.requestRedraw()
	}()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
