package commands

import (
	"errors"
	"fmt"
	"strings"
)

// Substitute is a parsed "/pattern/replacement/flags" command.
type Substitute struct {
	Pattern     string
	Replacement string
	Global      bool // g: replace every match instead of moving to the next
	IgnoreCase  bool // i
}

var errSubstituteSyntax = errors.New("usage: s/pattern/replacement/[flags]")

// ParseSubstitute splits "/pattern/replacement/flags". A backslash keeps a
// following '/' in the field; other escapes are left for the regex engine
// and the replacement template.
func ParseSubstitute(input string) (Substitute, error) {
	if !strings.HasPrefix(input, "/") {
		return Substitute{}, errSubstituteSyntax
	}

	var parts []string
	var current strings.Builder
	escaped := false
	for _, ch := range input[1:] {
		switch {
		case escaped:
			if ch != '/' {
				current.WriteRune('\\')
			}
			current.WriteRune(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '/':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	parts = append(parts, current.String())

	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" {
		return Substitute{}, errSubstituteSyntax
	}

	sub := Substitute{Pattern: parts[0], Replacement: parts[1]}
	if len(parts) == 3 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				sub.Global = true
			case 'i':
				sub.IgnoreCase = true
			default:
				return Substitute{}, fmt.Errorf("unknown flag '%c'", f)
			}
		}
	}
	return sub, nil
}
