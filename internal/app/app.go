// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidefind/internal/buffer"
	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/input"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/modehandler"
	"github.com/bethropolis/tidefind/internal/statusbar"
	"github.com/bethropolis/tidefind/internal/theme"
	"github.com/bethropolis/tidefind/internal/tui"
	"github.com/bethropolis/tidefind/internal/types"
)

// App is the interactive find and replace view.
type App struct {
	tuiManager   *tui.TUI
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	activeTheme  *theme.Theme

	highlights      []types.Range
	highlightsDirty atomic.Bool // Set from event handlers on any goroutine

	quit          chan struct{}
	redrawRequest chan struct{}
}

// Options configure NewApp.
type Options struct {
	Config      *config.Config
	Buffer      buffer.Buffer
	Screen      tcell.Screen // nil opens the terminal
	Theme       *theme.Theme // nil uses the built-in theme
	FindString  string
	Replacement string
	Selection   []types.Range
}

// NewApp creates the view over opts.Buffer. ctx bounds replace-all runs.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	activeTheme := opts.Theme
	if activeTheme == nil {
		activeTheme = &theme.DevComfortDark
	}

	var tuiManager *tui.TUI
	var err error
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, activeTheme)
	} else {
		tuiManager, err = tui.New(activeTheme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(opts.Buffer, cfg, eventManager)
	if len(opts.Selection) > 0 {
		editor.SetSelection(opts.Selection)
	}
	fm := editor.GetFindManager()
	fm.SetFindString(opts.FindString)
	fm.SetReplacement(opts.Replacement)

	sbConfig := statusbar.Config{
		StyleDefault:   activeTheme.GetStyle(theme.StyleStatusBar),
		StyleModified:  activeTheme.GetStyle(theme.StyleStatusModified),
		StyleMessage:   activeTheme.GetStyle(theme.StyleStatusMessage),
		StylePrompt:    activeTheme.GetStyle(theme.StyleStatusPrompt),
		MessageTimeout: cfg.UI.MessageTimeout(),
	}

	a := &App{
		tuiManager:      tuiManager,
		editor:          editor,
		statusBar:       statusbar.New(sbConfig),
		eventManager:    eventManager,
		activeTheme:     activeTheme,
		quit:            make(chan struct{}),
		redrawRequest:   make(chan struct{}, 1),
	}
	a.modeHandler = modehandler.New(modehandler.Config{
		Context:        ctx,
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
		RequestRedraw:  a.requestRedraw,
	})
	a.highlightsDirty.Store(true)
	a.subscribe()

	width, height := tuiManager.Size()
	editor.SetViewSize(width, height)
	return a, nil
}

// Editor exposes the editor, mainly for tests.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// Run handles events and redraws until the user quits or ctx is done.
// Key handling and drawing share this goroutine; only replace-all runs
// elsewhere, and the buffer is left alone while it does.
func (a *App) Run(ctx context.Context) error {
	defer a.tuiManager.Close()

	events := make(chan tcell.Event, 16)
	go a.eventLoop(events)

	a.statusBar.SetTemporaryMessage("n/N next/prev | r replace | a all | / find | e replacement | : command | q quit")
	a.requestRedraw()

	for {
		select {
		case <-ctx.Done():
			a.modeHandler.Wait()
			return nil
		case <-a.quit:
			a.modeHandler.Wait()
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop forwards screen events until the screen is finalized.
func (a *App) eventLoop(events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		events <- ev
	}
}

// handleEvent reports whether ev needs a redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		if !a.modeHandler.Busy() {
			w, h := a.tuiManager.Size()
			a.editor.SetViewSize(w, h)
		}
		return true
	case *tcell.EventKey:
		settings := a.editor.GetFindManager().Settings()
		findString := a.editor.GetFindManager().FindString()
		redraw := a.modeHandler.HandleKeyEvent(ev)
		if a.editor.GetFindManager().Settings() != settings || a.editor.GetFindManager().FindString() != findString {
			a.highlightsDirty.Store(true)
		}
		return redraw
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}
