package textfind

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

var unescapes = map[rune]rune{
	'0':  0,
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
}

// unescape resolves \0 \t \n \r \" \' when the backslash itself is not
// escaped. Other backslashes are left for the template expansion.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' {
			b.WriteRune(rs[i])
			continue
		}
		j := i
		for j < len(rs) && rs[j] == '\\' {
			j++
		}
		run := j - i
		if j < len(rs) && run%2 == 1 {
			if r, ok := unescapes[rs[j]]; ok {
				b.WriteString(strings.Repeat(`\`, run-1))
				b.WriteRune(r)
				i = j
				continue
			}
		}
		b.WriteString(strings.Repeat(`\`, run))
		i = j - 1
	}
	return b.String()
}

// replacementTemplate is the replacement as entered, unescaped when the mode asks for it.
func (tf *TextFind) replacementTemplate(replacement string) string {
	if m, ok := tf.mode.(RegularExpression); ok && m.UnescapesReplacement {
		return unescape(replacement)
	}
	return replacement
}

// expand substitutes capture groups of m into template.
//
//	$n       group n; digits are consumed while the number is a valid group
//	${name}  named or numbered group
//	\c       literal c
//
// Groups that did not participate expand to nothing.
func (tf *TextFind) expand(template string, m *regexp2.Match) string {
	if !strings.ContainsAny(template, `$\`) {
		return template
	}
	rs := []rune(template)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '\\' && i+1 < len(rs):
			i++
			b.WriteRune(rs[i])

		case c == '$' && i+1 < len(rs) && isDigit(rs[i+1]):
			n := int(rs[i+1] - '0')
			j := i + 2
			for j < len(rs) && isDigit(rs[j]) {
				next := n*10 + int(rs[j]-'0')
				if next > tf.numberOfCaptureGroups {
					break
				}
				n = next
				j++
			}
			b.WriteString(groupText(m.GroupByNumber(n)))
			i = j - 1

		case c == '$' && i+1 < len(rs) && rs[i+1] == '{':
			end := indexRune(rs, '}', i+2)
			if end < 0 {
				b.WriteRune(c)
				continue
			}
			name := string(rs[i+2 : end])
			if n, err := strconv.Atoi(name); err == nil {
				b.WriteString(groupText(m.GroupByNumber(n)))
			} else {
				b.WriteString(groupText(m.GroupByName(name)))
			}
			i = end

		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func groupText(g *regexp2.Group) string {
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func indexRune(rs []rune, r rune, from int) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
