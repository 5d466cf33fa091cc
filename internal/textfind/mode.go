package textfind

import "github.com/dlclark/regexp2"

// Mode selects how the find string is interpreted. It is either Textual or
// RegularExpression.
type Mode interface {
	isMode()
}

// TextualOptions are compare options for literal search.
type TextualOptions uint

const (
	// CaseInsensitive compares with Unicode case folding.
	CaseInsensitive TextualOptions = 1 << iota
	// DiacriticInsensitive ignores combining marks (é matches e).
	DiacriticInsensitive
	// WidthInsensitive treats full- and half-width forms as equal.
	WidthInsensitive
	// Backwards is never valid here; the direction is an argument of Find.
	Backwards
)

// RegexOptions are compile options for regular expression search.
// Anchors always match at line boundaries.
type RegexOptions uint

const (
	RegexCaseInsensitive RegexOptions = 1 << iota
	// RegexIgnoreMetacharacters treats the whole pattern as literal text.
	RegexIgnoreMetacharacters
	RegexAllowCommentsAndWhitespace
	RegexDotMatchesLineSeparators
)

// Textual searches for the find string as literal text.
type Textual struct {
	Options TextualOptions
	// FullWord only accepts matches that begin and end on word boundaries.
	FullWord bool
}

// RegularExpression searches with the find string as a pattern.
type RegularExpression struct {
	Options RegexOptions
	// UnescapesReplacement turns \n, \t etc. in the replacement template into
	// the characters they name before capture groups are substituted.
	UnescapesReplacement bool
}

func (Textual) isMode()           {}
func (RegularExpression) isMode() {}

func (o TextualOptions) has(flag TextualOptions) bool { return o&flag != 0 }

func (o RegexOptions) has(flag RegexOptions) bool { return o&flag != 0 }

// compileOptions maps RegexOptions onto the engine's flags.
func (o RegexOptions) compileOptions() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.Multiline)
	if o.has(RegexCaseInsensitive) {
		opts |= regexp2.IgnoreCase
	}
	if o.has(RegexAllowCommentsAndWhitespace) {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if o.has(RegexDotMatchesLineSeparators) {
		opts |= regexp2.Singleline
	}
	return opts
}
