// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidefind/internal/logger"
)

// Style names used by the find view.
const (
	StyleDefault         = "Default"
	StyleLineNumber      = "LineNumber"
	StyleSelection       = "Selection"
	StyleSearchHighlight = "SearchHighlight"
	StyleStatusBar       = "StatusBar"
	StyleStatusModified  = "StatusBar.Modified"
	StyleStatusMessage   = "StatusBar.Message"
	StyleStatusPrompt    = "StatusBar.Prompt"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, then its base name (before the first
// dot), then Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}
	return tcell.StyleDefault
}

// DevComfortDark is the built-in theme.
var DevComfortDark Theme

func init() {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	statusStyle := tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:         baseStyle,
			StyleLineNumber:      baseStyle.Foreground(dcComment),
			StyleSelection:       baseStyle.Reverse(true),
			StyleSearchHighlight: tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			StyleStatusBar:       statusStyle,
			StyleStatusModified:  statusStyle.Foreground(dcYellow).Bold(true),
			StyleStatusMessage:   statusStyle.Bold(true),
			StyleStatusPrompt:    statusStyle.Foreground(dcGreen).Bold(true),
		},
	}
}
