// Package textfind finds and replaces text in a string snapshot.
//
// A TextFind is built for one haystack, one find string and one Mode. Its
// operations never modify the haystack: Replace and ReplaceAll describe the
// edits and the caller applies them to its own storage.
//
// All ranges are rune offsets into the haystack.
package textfind

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/bethropolis/tidefind/internal/logger"
	"github.com/bethropolis/tidefind/internal/types"
)

// Options scope a TextFind to the caller's selection.
type Options struct {
	// InSelection restricts every operation to SelectedRanges.
	InSelection bool
	// SelectedRanges are the caller's selections in document order.
	// Empty means a single empty selection at offset 0.
	SelectedRanges []types.Range
}

// ReplacementItem is one edit: put String where Range is.
type ReplacementItem struct {
	String string
	Range  types.Range
}

// FindResult is the outcome of Find and FindInSelection.
type FindResult struct {
	Range   types.Range // Valid only when Found
	Found   bool
	Count   int  // Matches in the whole scope
	Wrapped bool // The match came from the other side of the caret
}

// TextFind is immutable after New. It is not safe for concurrent use.
type TextFind struct {
	text       string
	runes      []rune
	findString string
	mode       Mode

	inSelection    bool
	selectedRanges []types.Range
	scopeRanges    []types.Range

	// regex mode
	regex                 *regexp2.Regexp
	pattern               string
	regexOptions          regexp2.RegexOptions
	numberOfCaptureGroups int

	// textual mode
	folded *foldedText
	needle string
	words  wordBoundaries
}

// New prepares a search of text for findString.
//
// It fails with ErrEmptyFindString or a *RegularExpressionError. It panics
// when Textual options contain Backwards or a selected range lies outside text.
func New(text, findString string, mode Mode, opts Options) (*TextFind, error) {
	if findString == "" {
		return nil, ErrEmptyFindString
	}

	tf := &TextFind{
		text:        text,
		runes:       []rune(text),
		findString:  findString,
		mode:        mode,
		inSelection: opts.InSelection,
	}

	tf.selectedRanges = opts.SelectedRanges
	if len(tf.selectedRanges) == 0 {
		tf.selectedRanges = []types.Range{{}}
	}
	for _, r := range tf.selectedRanges {
		if r.Location < 0 || r.Length < 0 || r.UpperBound() > len(tf.runes) {
			panic(fmt.Sprintf("textfind: selected range %v out of bounds (length %d)", r, len(tf.runes)))
		}
	}
	if tf.inSelection {
		tf.scopeRanges = tf.selectedRanges
	} else {
		tf.scopeRanges = []types.Range{{Location: 0, Length: len(tf.runes)}}
	}

	switch m := mode.(type) {
	case Textual:
		if m.Options.has(Backwards) {
			panic("textfind: textual options must not contain Backwards")
		}
		tf.folded = newFoldedText(tf.runes, m.Options)
		tf.needle = newFolder(m.Options).foldString(findString)
		if m.FullWord {
			tf.words = newWordBoundaries(text, len(tf.runes))
		}

	case RegularExpression:
		pattern := findString
		if m.Options.has(RegexIgnoreMetacharacters) {
			pattern = regexp2.Escape(pattern)
		}
		tf.pattern, tf.regexOptions = pattern, m.Options.compileOptions()
		re, err := regexp2.Compile(tf.pattern, tf.regexOptions)
		if err != nil {
			logger.DebugTagf("textfind", "pattern %q rejected: %v", findString, err)
			return nil, &RegularExpressionError{Pattern: findString, Reason: err.Error()}
		}
		tf.regex = re
		tf.numberOfCaptureGroups = len(re.GetGroupNumbers()) - 1

	default:
		panic(fmt.Sprintf("textfind: unknown mode %T", mode))
	}

	return tf, nil
}

// String returns the haystack.
func (tf *TextFind) String() string { return tf.text }

// FindString returns the search term.
func (tf *TextFind) FindString() string { return tf.findString }

// Mode returns the search mode.
func (tf *TextFind) Mode() Mode { return tf.mode }

// InSelection reports whether operations are scoped to the selection.
func (tf *TextFind) InSelection() bool { return tf.inSelection }

// SelectedRanges returns the selections the instance was built with.
func (tf *TextFind) SelectedRanges() []types.Range {
	return append([]types.Range(nil), tf.selectedRanges...)
}

// ScopeRanges returns the ranges every operation is restricted to.
func (tf *TextFind) ScopeRanges() []types.Range {
	return append([]types.Range(nil), tf.scopeRanges...)
}

// NumberOfCaptureGroups is the group count of the pattern, 0 in textual mode.
func (tf *TextFind) NumberOfCaptureGroups() int { return tf.numberOfCaptureGroups }

// substring returns the text of r.
func (tf *TextFind) substring(r types.Range) string {
	return string(tf.runes[r.Location:r.UpperBound()])
}
