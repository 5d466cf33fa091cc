package textfind

import (
	"errors"
	"fmt"
)

// ErrEmptyFindString is returned by New when there is nothing to search for.
var ErrEmptyFindString = errors.New("textfind: empty find string")

// RegularExpressionError is returned by New when the pattern does not compile.
type RegularExpressionError struct {
	Pattern string
	Reason  string // Diagnostic from the regex engine
}

func (e *RegularExpressionError) Error() string {
	return fmt.Sprintf("textfind: invalid regular expression: %s", e.Reason)
}

// RecoverySuggestion returns the hint a UI shows next to a construction error.
func RecoverySuggestion(err error) string {
	var reErr *RegularExpressionError
	switch {
	case errors.Is(err, ErrEmptyFindString):
		return "Input text to find."
	case errors.As(err, &reErr):
		return reErr.Reason
	default:
		return ""
	}
}
