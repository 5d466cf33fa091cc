package textfind

import (
	"github.com/dlclark/regexp2"

	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/types"
)

// ReplaceFlagKind tells which unit of ReplaceAll work just finished.
type ReplaceFlagKind int

const (
	// FindProgress follows every match found.
	FindProgress ReplaceFlagKind = iota
	// FoundCount follows the end of a scope range; Count holds its matches.
	FoundCount
	// ReplacementProgress precedes every splice into a scope's text.
	ReplacementProgress
)

func (k ReplaceFlagKind) String() string {
	switch k {
	case FindProgress:
		return "findProgress"
	case FoundCount:
		return "foundCount"
	case ReplacementProgress:
		return "replacementProgress"
	default:
		return "unknown"
	}
}

// ReplaceFlag is passed to the ReplaceAll progress callback.
type ReplaceFlag struct {
	Kind  ReplaceFlagKind
	Count int // FoundCount only
}

// ReplaceAll replaces every match in the scope and returns one item per scope
// range holding the whole new text of that range, unchanged when it had no
// matches. selected is the scope ranges re-mapped onto the edited text; it is
// nil unless the instance is InSelection.
//
// fn, if not nil, is called after each unit of work and may set *stop.
// Stopping drops the scope range in progress; completed ones are returned.
func (tf *TextFind) ReplaceAll(replacement string, fn func(flag ReplaceFlag, stop *bool)) (items []ReplacementItem, selected []types.Range) {
	if fn == nil {
		fn = func(ReplaceFlag, *bool) {}
	}
	template := tf.replacementTemplate(replacement)

	var pending []ReplacementItem
	delta := 0

	tf.enumerateMatches(tf.scopeRanges, func(r types.Range, m *regexp2.Match, stop *bool) {
		text := template
		if m != nil {
			text = tf.expand(template, m)
		}
		pending = append(pending, ReplacementItem{String: text, Range: r})
		fn(ReplaceFlag{Kind: FindProgress}, stop)
	}, func(scope types.Range, stop *bool) {
		found := pending
		pending = nil

		fn(ReplaceFlag{Kind: FoundCount, Count: len(found)}, stop)
		if *stop {
			return
		}

		replaced := append([]rune(nil), tf.runes[scope.Location:scope.UpperBound()]...)
		for i := len(found) - 1; i >= 0; i-- {
			fn(ReplaceFlag{Kind: ReplacementProgress}, stop)
			if *stop {
				return
			}
			local := found[i].Range.Shifted(-scope.Location)
			tail := append([]rune(found[i].String), replaced[local.UpperBound():]...)
			replaced = append(replaced[:local.Location], tail...)
		}

		items = append(items, ReplacementItem{String: string(replaced), Range: scope})
		selected = append(selected, types.Range{Location: scope.Location + delta, Length: len(replaced)})
		delta += len(replaced) - scope.Length

		logger.DebugTagf("replace", "TextFind: scope %v: %d replacement(s), length delta %d", scope, len(found), len(replaced)-scope.Length)
	})

	if !tf.inSelection {
		return items, nil
	}
	return items, selected
}
