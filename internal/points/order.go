package points

import (
	"errors"
	"sort"
)

// ErrMissingPosition is returned when document-order sorting is
// required but neither order_in_doc nor page_start is present on every
// point. Guessing an order here would break the determinism contract,
// so the defect is surfaced instead.
var ErrMissingPosition = errors.New("document-order sort requires order_in_doc or page_start on every point")

// SortPoints returns a new slice holding pts in the total order defined
// by mode. The input is never mutated and the result is deterministic
// for identical inputs.
//
// NUMERIC mode compares parsed numeric-id segment arrays
// lexicographically; a parent id sorts before its children ("4" before
// "4.2") because a missing segment is less than any present one. Points
// without a usable numeric id order after all numeric points, among
// themselves by document position and then first-seen order.
//
// DOCUMENT_ORDER mode sorts by order_in_doc if present on every point,
// else by page_start if present on every point, else fails with
// ErrMissingPosition. Ties stay in first-seen order, never broken by
// title or other text.
func SortPoints(pts []DetectedPoint, mode SortMode) ([]DetectedPoint, error) {
	out := make([]DetectedPoint, len(pts))
	copy(out, pts)
	if len(out) < 2 {
		return out, nil
	}

	switch mode {
	case SortModeNumeric:
		segs := make([][]int, len(out))
		for i, p := range out {
			if IsNumericPointID(p.NumericID) {
				segs[i], _ = ParseNumericID(p.NumericID)
			}
		}
		idx := stableIndexes(len(out), func(i, j int) bool {
			a, b := segs[i], segs[j]
			switch {
			case a != nil && b != nil:
				return compareSegments(a, b) < 0
			case a != nil:
				return true
			case b != nil:
				return false
			default:
				return lessByPosition(out[i], out[j])
			}
		})
		return reorder(out, idx), nil

	case SortModeDocumentOrder:
		key, err := documentOrderKey(out)
		if err != nil {
			return nil, err
		}
		idx := stableIndexes(len(out), func(i, j int) bool {
			return key(out[i]) < key(out[j])
		})
		return reorder(out, idx), nil
	}
	return out, nil
}

// compareSegments orders parsed numeric ids lexicographically with the
// strict-prefix (parent) case sorting first.
func compareSegments(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// documentOrderKey picks the primary position key for DOCUMENT_ORDER
// mode. A fully-missing key set is an upstream data-quality defect, not
// something to paper over with a zero-fill.
func documentOrderKey(pts []DetectedPoint) (func(DetectedPoint) int, error) {
	allOrder := true
	allPage := true
	for _, p := range pts {
		if p.OrderInDoc <= 0 {
			allOrder = false
		}
		if p.PageStart <= 0 {
			allPage = false
		}
	}
	switch {
	case allOrder:
		return func(p DetectedPoint) int { return p.OrderInDoc }, nil
	case allPage:
		return func(p DetectedPoint) int { return p.PageStart }, nil
	}
	return nil, ErrMissingPosition
}

// lessByPosition orders two non-numeric points by whatever position
// metadata both carry. Equal or unusable keys report false so a stable
// sort keeps first-seen order.
func lessByPosition(a, b DetectedPoint) bool {
	if a.OrderInDoc > 0 && b.OrderInDoc > 0 {
		return a.OrderInDoc < b.OrderInDoc
	}
	if a.PageStart > 0 && b.PageStart > 0 {
		return a.PageStart < b.PageStart
	}
	return false
}

// stableIndexes stable-sorts index positions so the comparator can
// reference precomputed per-element state.
func stableIndexes(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
	return idx
}

func reorder(pts []DetectedPoint, idx []int) []DetectedPoint {
	out := make([]DetectedPoint, len(pts))
	for i, j := range idx {
		out[i] = pts[j]
	}
	return out
}
