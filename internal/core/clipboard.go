package core

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tidefind/internal/logger"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	logger.Debugf("Clipboard: copied %d bytes", len(text))
	return nil
}

// YankSelection copies the selected text to the system clipboard, one line
// per selected range. It returns false when nothing is selected.
func (e *Editor) YankSelection() (bool, error) {
	texts, err := e.SelectedText()
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text for yank: %w", err)
	}
	if len(texts) == 0 {
		return false, nil
	}
	if err := CopyToClipboard(strings.Join(texts, "\n")); err != nil {
		return false, err
	}
	return true, nil
}
