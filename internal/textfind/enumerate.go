package textfind

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/types"
)

// matchHandler receives each match in document order. m is nil in textual mode.
type matchHandler func(r types.Range, m *regexp2.Match, stop *bool)

// scopeHandler runs after every match of a scope range has been reported.
// It is not called for a scope whose enumeration was stopped, and setting
// *stop skips the remaining scopes.
type scopeHandler func(scope types.Range, stop *bool)

// completeScope runs scopeDone if set and reports whether to go on.
func completeScope(scopeDone scopeHandler, scope types.Range) bool {
	if scopeDone == nil {
		return true
	}
	stop := false
	scopeDone(scope, &stop)
	return !stop
}

func (tf *TextFind) enumerateMatches(ranges []types.Range, fn matchHandler, scopeDone scopeHandler) {
	switch m := tf.mode.(type) {
	case Textual:
		tf.enumerateTextualMatches(ranges, m.FullWord, fn, scopeDone)
	case RegularExpression:
		tf.enumerateRegexMatches(ranges, fn, scopeDone)
	}
}

func (tf *TextFind) enumerateTextualMatches(ranges []types.Range, fullWord bool, fn matchHandler, scopeDone scopeHandler) {
	for _, scope := range ranges {
		loc := scope.Location
		for {
			found, ok := tf.folded.index(tf.needle, loc)
			if !ok || found.UpperBound() > scope.UpperBound() {
				break
			}
			loc = found.UpperBound()
			if fullWord && !tf.isFullWord(found) {
				continue
			}
			stop := false
			fn(found, nil, &stop)
			if stop {
				return
			}
		}
		if !completeScope(scopeDone, scope) {
			return
		}
	}
}

// enumerateRegexMatches searches each scope with the whole text as context, so
// lookarounds, anchors and \b see the text on both sides of the scope. Once a
// match runs past the scope end, the rest of the scope is searched with a
// pattern that may not consume beyond it.
func (tf *TextFind) enumerateRegexMatches(ranges []types.Range, fn matchHandler, scopeDone scopeHandler) {
	for _, scope := range ranges {
		end := scope.UpperBound()

		m, err := tf.regex.FindRunesMatchStartingAt(tf.runes, scope.Location)
		for err == nil && m != nil {
			if m.Index+m.Length > end {
				if m.Index <= end {
					var stopped bool
					stopped, err = tf.enumerateBoundedMatches(m.Index, end, fn)
					if stopped {
						return
					}
				}
				break
			}

			stop := false
			fn(types.Range{Location: m.Index, Length: m.Length}, m, &stop)
			if stop {
				return
			}
			m, err = tf.regex.FindNextMatch(m)
		}
		if err != nil {
			logger.Warnf("TextFind: regex enumeration in %v ended early: %v", scope, err)
		}

		if !completeScope(scopeDone, scope) {
			return
		}
	}
}

// enumerateBoundedMatches reports the matches in [from, end] that end at or
// before end, still reading the text after end for context.
func (tf *TextFind) enumerateBoundedMatches(from, end int, fn matchHandler) (stopped bool, err error) {
	re, err := tf.boundedRegex(len(tf.runes) - end)
	if err != nil {
		return false, err
	}
	for pos := from; pos <= end; {
		m, err := re.FindRunesMatchStartingAt(tf.runes, pos)
		if err != nil {
			return false, err
		}
		if m == nil {
			pos++
			continue
		}

		stop := false
		fn(types.Range{Location: m.Index, Length: m.Length}, m, &stop)
		if stop {
			return true, nil
		}
		pos = m.Index + m.Length
		if m.Length == 0 {
			pos++
		}
	}
	return false, nil
}

// boundedRegex anchors the pattern at the search start and requires at least
// tail runes after the match, which keeps it from consuming past the scope
// end. Groups keep their numbers and names.
func (tf *TextFind) boundedRegex(tail int) (*regexp2.Regexp, error) {
	pattern := tf.pattern
	if tf.regexOptions&regexp2.IgnorePatternWhitespace != 0 {
		// A trailing #comment must not swallow the closing parenthesis.
		pattern += "\n"
	}
	return regexp2.Compile(fmt.Sprintf(`\G(?:%s)(?=[\s\S]{%d})`, pattern, tail), tf.regexOptions)
}

// captureRanges returns the whole match followed by groups 1...N.
func (tf *TextFind) captureRanges(r types.Range, m *regexp2.Match) []types.Range {
	ranges := make([]types.Range, 0, tf.numberOfCaptureGroups+1)
	ranges = append(ranges, r)
	if m == nil {
		return ranges
	}
	for n := 1; n <= tf.numberOfCaptureGroups; n++ {
		g := m.GroupByNumber(n)
		if g == nil || len(g.Captures) == 0 {
			ranges = append(ranges, types.NotFoundRange)
			continue
		}
		ranges = append(ranges, types.Range{Location: g.Index, Length: g.Length})
	}
	return ranges
}
