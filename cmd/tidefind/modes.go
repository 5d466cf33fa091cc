package main

import (
	"fmt"

	"github.com/bethropolis/tidefind/internal/config"
	"github.com/bethropolis/tidefind/internal/core"
	"github.com/bethropolis/tidefind/internal/event"
	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/preview"
	"github.com/bethropolis/tidefind/internal/textfind"
	"github.com/bethropolis/tidefind/internal/types"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = core.CopyToClipboard

func (inv *invocation) newEditor() *core.Editor {
	em := event.NewManager()
	ed := core.NewEditor(inv.buf, inv.cfg, em)
	fm := ed.GetFindManager()
	fm.SetFindString(inv.pattern)
	fm.SetReplacement(*inv.flags.Replacement)
	if len(inv.selection) > 0 {
		ed.SetSelection(inv.selection)
	}
	return ed
}

// location renders offset as 1-based line:col.
func (inv *invocation) location(offset int) string {
	pos, err := inv.buf.OffsetToPosition(offset)
	if err != nil {
		return fmt.Sprintf("@%d", offset)
	}
	return fmt.Sprintf("%d:%d", pos.Line+1, pos.Col+1)
}

func (inv *invocation) text(r types.Range) string {
	s, err := inv.buf.TextInRange(r)
	if err != nil {
		logger.Warnf("Match %v outside the buffer: %v", r, err)
	}
	return s
}

// runList prints every match with its capture groups, then the count.
func (inv *invocation) runList() int {
	tf, err := textfind.New(inv.buf.String(), inv.pattern, inv.cfg.Find.Mode(), textfind.Options{
		InSelection:    inv.cfg.Find.InSelection,
		SelectedRanges: inv.selection,
	})
	if err != nil {
		return inv.fail(err)
	}

	count := 0
	interrupted := false
	tf.FindAll(func(matches []types.Range, stop *bool) {
		if inv.ctx.Err() != nil {
			interrupted = true
			*stop = true
			return
		}
		count++
		whole := matches[0]
		fmt.Fprintf(inv.stdout, "%s: %q\n", inv.location(whole.Location), inv.text(whole))
		for i, g := range matches[1:] {
			if g.IsNotFound() {
				fmt.Fprintf(inv.stdout, "\t$%d unmatched\n", i+1)
				continue
			}
			fmt.Fprintf(inv.stdout, "\t$%d %s: %q\n", i+1, inv.location(g.Location), inv.text(g))
		}
	})
	if interrupted {
		fmt.Fprintf(inv.stderr, "%s: interrupted\n", config.AppName)
		return exitError
	}
	fmt.Fprintf(inv.stdout, "%d %s\n", count, plural(count, "match", "matches"))
	if count == 0 {
		return exitNoMatch
	}
	return exitOK
}

// runFind prints the match after (or before) the -at caret.
func (inv *invocation) runFind(forward bool) int {
	ed := inv.newEditor()
	if inv.flags.IsSet("at") {
		at := *inv.flags.At
		if at < 0 || at > inv.buf.RuneCount() {
			fmt.Fprintf(inv.stderr, "%s: -at %d is outside the text (%d runes)\n", config.AppName, at, inv.buf.RuneCount())
			return exitError
		}
		ed.SetSelection([]types.Range{{Location: at}})
	}

	var wrapped bool
	ed.GetEventManager().Subscribe(event.TypeSearchWrapped, func(event.Event) bool {
		wrapped = true
		return false
	})

	result, err := ed.GetFindManager().FindNext(forward)
	if err != nil {
		return inv.fail(err)
	}
	if !result.Found {
		fmt.Fprintf(inv.stdout, "no match (%d in total)\n", result.Count)
		return exitNoMatch
	}
	fmt.Fprintf(inv.stdout, "%s: %q [%d:%d]", inv.location(result.Range.Location), inv.text(result.Range), result.Range.Location, result.Range.Length)
	if wrapped {
		fmt.Fprint(inv.stdout, " (wrapped)")
	}
	fmt.Fprintf(inv.stdout, " %d %s in total\n", result.Count, plural(result.Count, "match", "matches"))
	return exitOK
}

// runReplace performs a single replace (-one) or a replace all and emits the
// result the way the output flags ask.
func (inv *invocation) runReplace() int {
	original := inv.buf.String()
	ed := inv.newEditor()
	fm := ed.GetFindManager()

	replaced := 0
	if *inv.flags.One {
		ok, err := fm.Replace()
		if err != nil {
			return inv.fail(err)
		}
		if ok {
			replaced = 1
		}
	} else {
		n, err := fm.ReplaceAll(inv.ctx)
		if err != nil {
			return inv.fail(err)
		}
		if inv.ctx.Err() != nil {
			fmt.Fprintf(inv.stderr, "%s: interrupted, nothing written\n", config.AppName)
			return exitError
		}
		replaced = n
	}

	result := inv.buf.String()
	stats := preview.Compute(original, result)
	logger.Infof("Replaced %d match(es): +%d -%d runes", replaced, stats.Insertions, stats.Deletions)

	switch {
	case *inv.flags.Diff:
		if inv.colorOutput() {
			fmt.Fprintln(inv.stdout, preview.Render(original, result))
		} else {
			fmt.Fprintln(inv.stdout, preview.RenderPlain(original, result))
		}
	case !*inv.flags.Write && !*inv.flags.Copy:
		fmt.Fprint(inv.stdout, result)
	}

	if *inv.flags.Write && replaced > 0 {
		if err := ed.SaveBuffer(); err != nil {
			fmt.Fprintf(inv.stderr, "%s: %v\n", config.AppName, err)
			return exitError
		}
	}
	if *inv.flags.Copy {
		if err := copyToClipboard(result); err != nil {
			fmt.Fprintf(inv.stderr, "%s: %v\n", config.AppName, err)
			return exitError
		}
	}

	fmt.Fprintf(inv.stderr, "replaced %d %s (+%d -%d, distance %d)\n",
		replaced, plural(replaced, "match", "matches"), stats.Insertions, stats.Deletions, stats.Levenshtein)
	if replaced == 0 {
		return exitNoMatch
	}
	return exitOK
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
