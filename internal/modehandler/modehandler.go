// internal/modehandler/modehandler.go
package modehandler

import (
	"context"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidefind/internal/commands"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core"
	"github.com/bethropolis/tidefind/internal/input"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeFind
	ModeReplacement
	ModeCommand
)

// ModeHandler turns key events into find and replace operations.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	requestRedraw  func()
	commands       *commands.Registry

	currentMode      InputMode
	promptBuffer     []rune
	forceQuitPending bool
	quitOnce         sync.Once

	// replace-all runs off the event loop
	ctx           context.Context
	mu            sync.Mutex
	busy          bool
	cancelReplace context.CancelFunc
	wg            sync.WaitGroup
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Context        context.Context // Parent of every replace-all run
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
	RequestRedraw  func() // Called from the replace-all goroutine when it ends
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.RequestRedraw == nil {
		cfg.RequestRedraw = func() {}
	}
	mh := &ModeHandler{
		ctx:            cfg.Context,
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		requestRedraw:  cfg.RequestRedraw,
		commands:       commands.NewRegistry(),
		currentMode:    ModeNormal,
	}
	commands.RegisterAppCommands(mh.commands, mh)
	return mh
}

// Mode returns the current input mode.
func (mh *ModeHandler) Mode() InputMode {
	return mh.currentMode
}

// Busy reports whether a replace-all is running. The buffer must not be
// read by the caller while it is.
func (mh *ModeHandler) Busy() bool {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	return mh.busy
}

// Wait blocks until a running replace-all has finished.
func (mh *ModeHandler) Wait() {
	mh.wg.Wait()
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	if mh.Busy() {
		return mh.handleBusy(mh.inputProcessor.ProcessEvent(ev))
	}

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(mh.inputProcessor.ProcessEvent(ev))
	case ModeFind, ModeReplacement, ModeCommand:
		return mh.handleActionPrompt(mh.inputProcessor.ProcessPromptEvent(ev))
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// handleBusy only lets the user cancel a running replace-all.
func (mh *ModeHandler) handleBusy(actionEvent input.ActionEvent) bool {
	if actionEvent.Action != input.ActionQuit {
		mh.statusBar.SetTemporaryMessage("Replace all in progress (Esc to cancel)")
		return true
	}
	mh.mu.Lock()
	cancel := mh.cancelReplace
	mh.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	mh.statusBar.SetTemporaryMessage("Cancelling replace all...")
	return true
}

// promptPrefix is shown before the prompt text for each mode.
func promptPrefix(mode InputMode) string {
	switch mode {
	case ModeFind:
		return "/"
	case ModeReplacement:
		return "replace with: "
	case ModeCommand:
		return ":"
	}
	return ""
}

func (mh *ModeHandler) enterPrompt(mode InputMode, initial string) {
	mh.currentMode = mode
	mh.promptBuffer = []rune(initial)
	mh.updatePrompt()
	logger.DebugTagf("mode", "ModeHandler: Entering prompt mode %d", mode)
}

func (mh *ModeHandler) updatePrompt() {
	mh.statusBar.SetPrompt(promptPrefix(mh.currentMode) + string(mh.promptBuffer))
}

func (mh *ModeHandler) exitPrompt() {
	mh.currentMode = ModeNormal
	mh.promptBuffer = nil
	mh.statusBar.SetPrompt("")
}

// handleActionPrompt edits the prompt line and runs it on Enter.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionPromptRune:
		mh.promptBuffer = append(mh.promptBuffer, actionEvent.Rune)
		mh.updatePrompt()

	case input.ActionPromptBackspace:
		if len(mh.promptBuffer) == 0 {
			mh.exitPrompt()
			return true
		}
		mh.promptBuffer = mh.promptBuffer[:len(mh.promptBuffer)-1]
		mh.updatePrompt()

	case input.ActionPromptCancel:
		mh.exitPrompt()

	case input.ActionPromptAccept:
		mode, text := mh.currentMode, string(mh.promptBuffer)
		mh.exitPrompt()
		mh.acceptPrompt(mode, text)

	default:
		return false
	}
	return true
}

func (mh *ModeHandler) acceptPrompt(mode InputMode, text string) {
	fm := mh.editor.GetFindManager()
	switch mode {
	case ModeFind:
		fm.SetFindString(text)
		if text != "" {
			mh.FindNext(true)
		}
	case ModeReplacement:
		fm.SetReplacement(text)
		mh.statusBar.SetTemporaryMessage("Replacement set to %q", text)
	case ModeCommand:
		if err := mh.commands.Execute(strings.TrimSpace(text)); err != nil {
			mh.statusBar.SetTemporaryMessage("Error: %v", err)
		}
	}
}

// --- commands.API ---

// FindSettings returns the find manager's options.
func (mh *ModeHandler) FindSettings() config.FindConfig {
	return mh.editor.GetFindManager().Settings()
}

// SetFindSettings replaces the find manager's options.
func (mh *ModeHandler) SetFindSettings(settings config.FindConfig) {
	mh.editor.GetFindManager().SetSettings(settings)
}

// SetFindString sets the find string.
func (mh *ModeHandler) SetFindString(s string) {
	mh.editor.GetFindManager().SetFindString(s)
}

// SetReplacement sets the replacement template.
func (mh *ModeHandler) SetReplacement(s string) {
	mh.editor.GetFindManager().SetReplacement(s)
}

// SetStatusMessage shows a temporary status message.
func (mh *ModeHandler) SetStatusMessage(format string, args ...interface{}) {
	mh.statusBar.SetTemporaryMessage(format, args...)
}

// Save writes the buffer, to path when given.
func (mh *ModeHandler) Save(path string) error {
	buf := mh.editor.GetBuffer()
	if path != "" {
		if err := buf.Save(path); err != nil {
			return err
		}
	} else if err := mh.editor.SaveBuffer(); err != nil {
		return err
	}
	mh.statusBar.SetTemporaryMessage("Buffer saved to %s", buf.FilePath())
	return nil
}

// Quit ends the session. Without force, unsaved changes need a second request.
func (mh *ModeHandler) Quit(force bool) error {
	if !force && mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Quit again or use :q! to discard them.")
		mh.forceQuitPending = true
		return nil
	}
	mh.quitOnce.Do(func() { close(mh.quitSignal) })
	return nil
}
