// Package preview renders what a replace-all would change.
package preview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats summarizes the difference between two texts in runes.
type Stats struct {
	Insertions  int
	Deletions   int
	Levenshtein int
}

func diff(oldText, newText string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// Render returns a colored inline diff for a terminal.
func Render(oldText, newText string) string {
	return diffmatchpatch.New().DiffPrettyText(diff(oldText, newText))
}

// RenderPlain marks deletions as [-text-] and insertions as {+text+}.
func RenderPlain(oldText, newText string) string {
	var sb strings.Builder
	for _, d := range diff(oldText, newText) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// Compute returns insertion and deletion counts and the edit distance.
func Compute(oldText, newText string) Stats {
	dmp := diffmatchpatch.New()
	diffs := diff(oldText, newText)
	var s Stats
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Insertions += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			s.Deletions += len([]rune(d.Text))
		}
	}
	s.Levenshtein = dmp.DiffLevenshtein(diffs)
	return s
}
