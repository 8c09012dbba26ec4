package points

// numericRatioPercent is the share of detected points that must carry
// a valid numeric id before hierarchical ordering is trusted. Mixed
// source formats make one global per-document decision safer than
// per-point fallback, which would interleave two incompatible orderings.
const numericRatioPercent = 70

// DetectSortMode inspects the whole detected-points universe (all
// kinds, before any eligibility filtering) and picks the global
// ordering strategy. With zero points the mode is undefined; callers
// must short-circuit to an empty overview instead.
func DetectSortMode(pts []DetectedPoint) SortMode {
	if len(pts) == 0 {
		return SortModeDocumentOrder
	}
	numeric := 0
	for _, p := range pts {
		if IsNumericPointID(p.NumericID) {
			numeric++
		}
	}
	// Integer comparison: numeric/total >= 0.70 without float rounding.
	if numeric*100 >= len(pts)*numericRatioPercent {
		return SortModeNumeric
	}
	return SortModeDocumentOrder
}

// DedupeKeyForMode returns the dedupe key matching a sort mode:
// NUMERIC dedupes on numeric_id, DOCUMENT_ORDER on point_key.
func DedupeKeyForMode(mode SortMode) DedupeKey {
	if mode == SortModeNumeric {
		return DedupeKeyNumericID
	}
	return DedupeKeyPointKey
}
