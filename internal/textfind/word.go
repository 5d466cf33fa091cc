package textfind

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidefind/internal/types"
)

// wordBoundaries marks the rune offsets that are UAX #29 word boundaries.
// It has one entry per offset including the end of the text.
type wordBoundaries []bool

func newWordBoundaries(text string, runeCount int) wordBoundaries {
	b := make(wordBoundaries, runeCount+1)
	b[0] = true
	b[runeCount] = true

	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		offset += utf8.RuneCountInString(word)
		if offset <= runeCount {
			b[offset] = true
		}
	}
	return b
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isFullWord reports whether r is a non-empty single-line span that starts and
// ends on word boundaries of the whole text.
func (tf *TextFind) isFullWord(r types.Range) bool {
	if r.Length == 0 || tf.words == nil {
		return false
	}
	for _, c := range tf.runes[r.Location:r.UpperBound()] {
		if isLineBreak(c) {
			return false
		}
	}
	return tf.words[r.Location] && tf.words[r.UpperBound()]
}
