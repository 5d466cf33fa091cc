package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"next", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionFindNext},
		{"previous", tcell.NewEventKey(tcell.KeyRune, 'N', tcell.ModShift), ActionFindPrevious},
		{"replace all", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ActionReplaceAll},
		{"redo", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), ActionRedo},
		{"save", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone), ActionSave},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), ActionPageDown},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionUnknown},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt), ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev).Action)
		})
	}
}

func TestProcessPromptEvent(t *testing.T) {
	p := NewInputProcessor()

	ev := p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionPromptRune, Rune: 'n'}, ev)

	assert.Equal(t, ActionPromptAccept, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionPromptCancel, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionPromptBackspace, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Action)
}
