// internal/types/range.go
package types

import "fmt"

// NotFound is the Location of a range that does not point into the text,
// e.g. an optional capture group that did not participate in a match.
const NotFound = -1

// NotFoundRange is the range reported for unmatched capture groups.
var NotFoundRange = Range{Location: NotFound}

// Range is a span of the document in rune offsets.
type Range struct {
	Location int
	Length   int
}

// NewRange builds a range from its bounds. upper must not be below lower.
func NewRange(lower, upper int) Range {
	return Range{Location: lower, Length: upper - lower}
}

// UpperBound is the offset just past the last rune of the range.
func (r Range) UpperBound() int {
	return r.Location + r.Length
}

// Contains reports whether loc lies inside [Location, UpperBound).
func (r Range) Contains(loc int) bool {
	return loc >= r.Location && loc < r.UpperBound()
}

// IsNotFound reports whether r is NotFoundRange.
func (r Range) IsNotFound() bool {
	return r.Location == NotFound
}

// Shifted returns r moved by delta runes.
func (r Range) Shifted(delta int) Range {
	return Range{Location: r.Location + delta, Length: r.Length}
}

func (r Range) String() string {
	if r.IsNotFound() {
		return "{not found}"
	}
	return fmt.Sprintf("{%d, %d}", r.Location, r.Length)
}
