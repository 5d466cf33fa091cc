// internal/input/action.go
package input

// Action represents an operation requested from the find view.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	// --- Find ---
	ActionFindNext
	ActionFindPrevious
	ActionReplace
	ActionReplaceAll
	ActionUndo
	ActionRedo
	ActionCopySelection

	// --- Options ---
	ActionToggleIgnoreCase
	ActionToggleFullWord
	ActionToggleRegex
	ActionToggleInSelection

	// --- Viewport ---
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown

	// --- Prompt ---
	ActionEditFind         // '/' opens the find prompt
	ActionEditReplacement  // 'e' opens the replacement prompt
	ActionEnterCommandMode // ':' opens the command line
	ActionPromptRune       // Requires Rune argument
	ActionPromptBackspace
	ActionPromptAccept
	ActionPromptCancel
)

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionPromptRune
}
