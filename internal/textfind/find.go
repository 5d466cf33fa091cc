package textfind

import (
	"github.com/dlclark/regexp2"

	"github.com/bethropolis/tidefind/internal/types"
)

// Find looks for the next (forward) or previous match relative to the first
// selected range. With isWrap it continues from the other end of the scope.
//
// Every match falls in exactly one bucket relative to the caret: at or after
// it, straddling it, or before it. A match straddling the caret is only
// reachable by wrapping, so it is neither skipped nor returned twice.
func (tf *TextFind) Find(forward, isWrap bool) FindResult {
	first := tf.selectedRanges[0]
	start := first.Location
	if forward {
		start = first.UpperBound()
	}

	var forwardMatches, intersectionMatches, wrappedMatches []types.Range
	tf.enumerateMatches(tf.scopeRanges, func(r types.Range, _ *regexp2.Match, _ *bool) {
		switch {
		case r.Location >= start:
			forwardMatches = append(forwardMatches, r)
		case r.Contains(start):
			intersectionMatches = append(intersectionMatches, r)
		default:
			wrappedMatches = append(wrappedMatches, r)
		}
	}, nil)

	result := FindResult{Count: len(forwardMatches) + len(intersectionMatches) + len(wrappedMatches)}
	if forward {
		result.Range, result.Found = firstRange(forwardMatches)
	} else {
		result.Range, result.Found = lastRange(wrappedMatches)
	}

	if !result.Found && isWrap {
		result.Wrapped = true
		if forward {
			result.Range, result.Found = firstRange(append(wrappedMatches, intersectionMatches...))
		} else {
			result.Range, result.Found = lastRange(append(intersectionMatches, forwardMatches...))
		}
	}
	return result
}

// FindInSelection returns the first (forward) or last match inside the
// selected ranges. It never wraps.
func (tf *TextFind) FindInSelection(forward bool) FindResult {
	var matches []types.Range
	tf.enumerateMatches(tf.selectedRanges, func(r types.Range, _ *regexp2.Match, _ *bool) {
		matches = append(matches, r)
	}, nil)

	result := FindResult{Count: len(matches)}
	if forward {
		result.Range, result.Found = firstRange(matches)
	} else {
		result.Range, result.Found = lastRange(matches)
	}
	return result
}

// FindAll calls fn for every match in the scope. matches[0] is the whole match
// and matches[1:] are capture groups 1...N (types.NotFoundRange when a group
// did not take part). Setting *stop ends the enumeration.
func (tf *TextFind) FindAll(fn func(matches []types.Range, stop *bool)) {
	tf.enumerateMatches(tf.scopeRanges, func(r types.Range, m *regexp2.Match, stop *bool) {
		fn(tf.captureRanges(r, m), stop)
	}, nil)
}

// Replace computes the replacement of the first match inside the first
// selected range. ok is false when there is none.
func (tf *TextFind) Replace(replacement string) (item ReplacementItem, ok bool) {
	selected := tf.selectedRanges[0]

	switch mode := tf.mode.(type) {
	case Textual:
		found, hit := tf.folded.index(tf.needle, selected.Location)
		if !hit || found.UpperBound() > selected.UpperBound() {
			return ReplacementItem{}, false
		}
		if mode.FullWord && !tf.isFullWord(found) {
			return ReplacementItem{}, false
		}
		return ReplacementItem{String: replacement, Range: found}, true

	case RegularExpression:
		var match *regexp2.Match
		var matched types.Range
		tf.enumerateRegexMatches([]types.Range{selected}, func(r types.Range, m *regexp2.Match, stop *bool) {
			match, matched = m, r
			*stop = true
		}, nil)
		if match == nil {
			return ReplacementItem{}, false
		}
		template := tf.replacementTemplate(replacement)
		return ReplacementItem{String: tf.expand(template, match), Range: matched}, true
	}
	return ReplacementItem{}, false
}

func firstRange(ranges []types.Range) (types.Range, bool) {
	if len(ranges) == 0 {
		return types.Range{}, false
	}
	return ranges[0], true
}

func lastRange(ranges []types.Range) (types.Range, bool) {
	if len(ranges) == 0 {
		return types.Range{}, false
	}
	return ranges[len(ranges)-1], true
}
