package points

import (
	"fmt"
	"testing"
)

func numberedPoints(numeric, plain int) []DetectedPoint {
	var pts []DetectedPoint
	for i := 0; i < numeric; i++ {
		pts = append(pts, DetectedPoint{
			PointKey:  fmt.Sprintf("pt-n%d", i),
			NumericID: fmt.Sprintf("%d.1", i+1),
			Kind:      KindPoint,
		})
	}
	for i := 0; i < plain; i++ {
		pts = append(pts, DetectedPoint{
			PointKey: fmt.Sprintf("pt-p%d", i),
			Kind:     KindPoint,
		})
	}
	return pts
}

func TestDetectSortMode_Threshold(t *testing.T) {
	tests := []struct {
		numeric, plain int
		want           SortMode
	}{
		{7, 3, SortModeNumeric},       // ratio exactly 0.70
		{6, 4, SortModeDocumentOrder}, // ratio 0.60
		{10, 0, SortModeNumeric},
		{0, 10, SortModeDocumentOrder},
		{1, 0, SortModeNumeric},
	}
	for _, tt := range tests {
		got := DetectSortMode(numberedPoints(tt.numeric, tt.plain))
		if got != tt.want {
			t.Errorf("DetectSortMode(%d numeric, %d plain) = %v, want %v", tt.numeric, tt.plain, got, tt.want)
		}
	}
}

func TestDetectSortMode_MalformedIDsDoNotCount(t *testing.T) {
	pts := numberedPoints(6, 0)
	pts = append(pts, DetectedPoint{PointKey: "pt-m1", NumericID: "4.2a", Kind: KindPoint})
	pts = append(pts, DetectedPoint{PointKey: "pt-m2", NumericID: "x", Kind: KindPoint})
	pts = append(pts, DetectedPoint{PointKey: "pt-m3", NumericID: "7.", Kind: KindPoint})
	pts = append(pts, DetectedPoint{PointKey: "pt-m4", NumericID: ".7", Kind: KindPoint})

	// 6 of 10 valid: below threshold.
	if got := DetectSortMode(pts); got != SortModeDocumentOrder {
		t.Errorf("expected DOCUMENT_ORDER with malformed ids excluded, got %v", got)
	}
}

func TestDetectSortMode_CountsAllKinds(t *testing.T) {
	// Sections count toward the ratio even though they never appear in
	// the overview: the decision reflects the whole detected universe.
	pts := numberedPoints(6, 3)
	pts = append(pts, DetectedPoint{PointKey: "sec-1", NumericID: "9", Kind: KindSection})

	// 7 of 10 valid once the section is included.
	if got := DetectSortMode(pts); got != SortModeNumeric {
		t.Errorf("expected NUMERIC with section counted, got %v", got)
	}
}

func TestDedupeKeyForMode(t *testing.T) {
	if got := DedupeKeyForMode(SortModeNumeric); got != DedupeKeyNumericID {
		t.Errorf("NUMERIC mode should dedupe on numeric_id, got %v", got)
	}
	if got := DedupeKeyForMode(SortModeDocumentOrder); got != DedupeKeyPointKey {
		t.Errorf("DOCUMENT_ORDER mode should dedupe on point_key, got %v", got)
	}
}
