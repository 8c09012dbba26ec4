package points

import (
	"fmt"
	"strconv"
	"strings"
)

// IsNumericPointID reports whether id is a dotted numeric hierarchy such
// as "4", "4.2" or "11.1.3". The whole string must consist of one or
// more dot-separated non-negative integers; anything else (including the
// empty string) is an opaque label. Leading zeros are accepted: "04.2"
// is the same identifier as "4.2" for comparison purposes.
func IsNumericPointID(id string) bool {
	if id == "" {
		return false
	}
	for _, seg := range strings.Split(id, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// ParseNumericID splits id on "." and converts each segment to an
// integer. Callers are expected to have validated id with
// IsNumericPointID first; a non-digit segment is an error, never a
// partial result.
func ParseNumericID(id string) ([]int, error) {
	if id == "" {
		return nil, fmt.Errorf("empty point id")
	}
	segs := strings.Split(id, ".")
	out := make([]int, 0, len(segs))
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("malformed point id %q: empty segment", id)
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("malformed point id %q: non-digit segment %q", id, seg)
			}
		}
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("malformed point id %q: %w", id, err)
		}
		out = append(out, n)
	}
	return out, nil
}
