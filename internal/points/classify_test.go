package points

import "testing"

func TestIsNumericPointID(t *testing.T) {
	valid := []string{"4", "4.2", "11.1.3", "0", "04.2", "10.20.30.40"}
	for _, id := range valid {
		if !IsNumericPointID(id) {
			t.Errorf("expected %q to classify as numeric", id)
		}
	}

	invalid := []string{"", "4.", ".4", "4..2", "4.2a", "a", "4-2", "4 2", "IV", "4,2", "-4", "+4"}
	for _, id := range invalid {
		if IsNumericPointID(id) {
			t.Errorf("expected %q to classify as non-numeric", id)
		}
	}
}

func TestParseNumericID(t *testing.T) {
	tests := []struct {
		id   string
		want []int
	}{
		{"4", []int{4}},
		{"4.2", []int{4, 2}},
		{"11.1.3", []int{11, 1, 3}},
		{"04.2", []int{4, 2}}, // leading zeros parse to the same integer
		{"0.0", []int{0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseNumericID(tt.id)
		if err != nil {
			t.Errorf("ParseNumericID(%q): unexpected error %v", tt.id, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseNumericID(%q) = %v, want %v", tt.id, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseNumericID(%q) = %v, want %v", tt.id, got, tt.want)
				break
			}
		}
	}
}

func TestParseNumericID_Malformed(t *testing.T) {
	for _, id := range []string{"", "4.", "4.2a", "x", "4..2"} {
		if _, err := ParseNumericID(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}
