package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_DefaultLine(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetFileInfo("notes.txt", true)
	sb.SetFindInfo("cat", "dog", []string{"case", "word"}, 3)

	text, style := sb.Text()
	assert.Equal(t, `notes.txt [Modified] -- find: "cat" -> "dog" [case,word] -- 3 matches`, text)
	assert.Equal(t, DefaultConfig().StyleModified, style)

	sb.SetFileInfo("", false)
	sb.SetFindInfo("", "", nil, 1)
	text, _ = sb.Text()
	assert.Equal(t, `[No Name] -- find: "" -> "" -- 1 match`, text)
}

func TestText_MessageExpires(t *testing.T) {
	sb := New(DefaultConfig())
	clock := time.Unix(100, 0)
	sb.now = func() time.Time { return clock }

	sb.SetTemporaryMessage("Replaced %d", 4)
	text, style := sb.Text()
	assert.Equal(t, "Replaced 4", text)
	assert.Equal(t, DefaultConfig().StyleMessage, style)

	clock = clock.Add(5 * time.Second)
	text, _ = sb.Text()
	assert.Contains(t, text, "[No Name]")
}

func TestText_PromptWins(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello")
	sb.SetPrompt("/ab")
	text, style := sb.Text()
	assert.Equal(t, "/ab", text)
	assert.Equal(t, DefaultConfig().StylePrompt, style)
}

func TestDraw_WideRunes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 2)

	sb := New(DefaultConfig())
	sb.SetPrompt("/日本x")
	sb.Draw(screen, 10, 2)
	screen.Show()

	cells, w, _ := screen.GetContents()
	row := cells[w : 2*w]
	assert.Equal(t, []rune("/"), row[0].Runes)
	assert.Equal(t, []rune("日"), row[1].Runes)
	assert.Equal(t, []rune("本"), row[3].Runes)
	assert.Equal(t, []rune("x"), row[5].Runes)
}
