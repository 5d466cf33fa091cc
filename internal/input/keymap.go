// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to actions.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap       Keymap
	runeKeymap   RuneKeymap
	modKeymap    ModKeymap
	promptKeymap Keymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:       make(Keymap),
		runeKeymap:   make(RuneKeymap),
		modKeymap:    make(ModKeymap),
		promptKeymap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionScrollUp
	p.keymap[tcell.KeyDown] = ActionScrollDown
	p.keymap[tcell.KeyPgUp] = ActionPageUp
	p.keymap[tcell.KeyPgDn] = ActionPageDown
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlR] = ActionRedo
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['n'] = ActionFindNext
	p.runeKeymap['N'] = ActionFindPrevious
	p.runeKeymap['r'] = ActionReplace
	p.runeKeymap['a'] = ActionReplaceAll
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['y'] = ActionCopySelection
	p.runeKeymap['i'] = ActionToggleIgnoreCase
	p.runeKeymap['w'] = ActionToggleFullWord
	p.runeKeymap['x'] = ActionToggleRegex
	p.runeKeymap['s'] = ActionToggleInSelection
	p.runeKeymap['/'] = ActionEditFind
	p.runeKeymap['e'] = ActionEditReplacement
	p.runeKeymap[':'] = ActionEnterCommandMode

	p.promptKeymap[tcell.KeyEnter] = ActionPromptAccept
	p.promptKeymap[tcell.KeyEscape] = ActionPromptCancel
	p.promptKeymap[tcell.KeyCtrlC] = ActionPromptCancel
	p.promptKeymap[tcell.KeyBackspace] = ActionPromptBackspace
	p.promptKeymap[tcell.KeyBackspace2] = ActionPromptBackspace
}

// ProcessEvent maps a key event in normal mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already carry the modifier in the key itself.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action, Rune: ev.Rune()}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

// ProcessPromptEvent maps a key event while a prompt is open. Plain runes
// are typed into the prompt.
func (p *InputProcessor) ProcessPromptEvent(ev *tcell.EventKey) ActionEvent {
	if action, ok := p.promptKeymap[ev.Key()]; ok {
		return ActionEvent{Action: action}
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionPromptRune, Rune: ev.Rune()}
	}
	if ev.Key() == tcell.KeyTab {
		return ActionEvent{Action: ActionPromptRune, Rune: '\t'}
	}
	return ActionEvent{Action: ActionUnknown}
}
