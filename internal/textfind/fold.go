package textfind

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/bethropolis/tidefind/internal/types"
)

const foldingOptions = CaseInsensitive | DiacriticInsensitive | WidthInsensitive

// folder maps runes to the form compared by textual search.
type folder struct {
	opts  TextualOptions
	caser cases.Caser
	marks transform.Transformer
	cache map[rune]string
}

func newFolder(opts TextualOptions) *folder {
	return &folder{
		opts:  opts,
		caser: cases.Fold(),
		marks: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		cache: make(map[rune]string),
	}
}

func (f *folder) identity() bool {
	return !f.opts.has(foldingOptions)
}

// foldRune applies width, diacritic and case folding in that order.
// The result may be empty (a lone combining mark) or longer than r (ß → ss).
func (f *folder) foldRune(r rune) string {
	if s, ok := f.cache[r]; ok {
		return s
	}
	s := string(r)
	if f.opts.has(WidthInsensitive) {
		s = width.Fold.String(s)
	}
	if f.opts.has(DiacriticInsensitive) {
		if stripped, _, err := transform.String(f.marks, s); err == nil {
			s = stripped
		}
	}
	if f.opts.has(CaseInsensitive) {
		s = f.caser.String(s)
	}
	f.cache[r] = s
	return s
}

func (f *folder) foldString(s string) string {
	if f.identity() {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		b.WriteString(f.foldRune(r))
	}
	return b.String()
}

// foldedText is the haystack in folded form. starts[i] is the byte offset in
// text where the fold of rune i begins; starts[len(runes)] == len(text).
type foldedText struct {
	text   string
	starts []int
}

func newFoldedText(src []rune, opts TextualOptions) *foldedText {
	f := newFolder(opts)
	starts := make([]int, len(src)+1)
	var b strings.Builder
	b.Grow(len(src))
	for i, r := range src {
		starts[i] = b.Len()
		if f.identity() {
			b.WriteRune(r)
		} else {
			b.WriteString(f.foldRune(r))
		}
	}
	starts[len(src)] = b.Len()
	return &foldedText{text: b.String(), starts: starts}
}

// runeStartingAt returns the last rune whose fold begins at byte off.
// Taking the last one keeps runes that fold to nothing with the rune before them.
func (ft *foldedText) runeStartingAt(off int) (int, bool) {
	i := sort.SearchInts(ft.starts, off+1) - 1
	if i < 0 || ft.starts[i] != off {
		return 0, false
	}
	return i, true
}

// index finds the first occurrence of needle whose ends fall on rune
// boundaries of the original text, starting at rune from.
func (ft *foldedText) index(needle string, from int) (types.Range, bool) {
	if needle == "" || from > len(ft.starts)-1 {
		return types.Range{}, false
	}
	b := ft.starts[from]
	for b < len(ft.text) {
		i := strings.Index(ft.text[b:], needle)
		if i < 0 {
			return types.Range{}, false
		}
		start := b + i
		lo, okLo := ft.runeStartingAt(start)
		hi, okHi := ft.runeStartingAt(start + len(needle))
		if okLo && okHi && lo >= from {
			return types.NewRange(lo, hi), true
		}
		_, size := utf8.DecodeRuneInString(ft.text[start:])
		b = start + size
	}
	return types.Range{}, false
}
