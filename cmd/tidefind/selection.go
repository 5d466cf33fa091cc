package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bethropolis/tidefind/internal/types"
)

// parseSelection reads "loc:len,loc:len" into ranges sorted by location.
// Every range must lie inside a document of n runes and ranges may not overlap.
func parseSelection(spec string, n int) ([]types.Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var ranges []types.Range
	for _, part := range strings.Split(spec, ",") {
		locStr, lenStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			lenStr = "0"
		}
		loc, err := strconv.Atoi(locStr)
		if err != nil {
			return nil, fmt.Errorf("bad location %q", locStr)
		}
		length, err := strconv.Atoi(lenStr)
		if err != nil {
			return nil, fmt.Errorf("bad length %q", lenStr)
		}
		r := types.Range{Location: loc, Length: length}
		if loc < 0 || length < 0 || r.UpperBound() > n {
			return nil, fmt.Errorf("range %d:%d is outside the text (%d runes)", loc, length, n)
		}
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Location < ranges[j].Location })
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Location < ranges[i-1].UpperBound() {
			return nil, fmt.Errorf("ranges %v and %v overlap", ranges[i-1], ranges[i])
		}
	}
	return ranges, nil
}
