package analyze

import (
	"testing"

	"github.com/dnordby/reportscan/internal/points"
)

func TestStripCodeBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `[{"title":"x"}]`, `[{"title":"x"}]`},
		{"fenced", "```\n[1,2]\n```", "[1,2]"},
		{"fenced json", "```json\n[1,2]\n```", "[1,2]"},
		{"surrounding whitespace", "  \n```json\n[]\n```\n ", "[]"},
		{"unfenced text", "no fences here", "no fences here"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeBlock(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		input string
		want  points.Grade
	}{
		{"TG2", points.GradeTG2},
		{"tg3", points.GradeTG3},
		{"TG 1", points.GradeTG1},
		{"TGIU", points.GradeTGIU},
		{"IU", points.GradeTGIU},
		{"2", points.GradeTG2},
		{"", points.GradeNone},
		{"TG5", points.GradeNone},
		{"ukjent", points.GradeNone},
	}
	for _, tc := range tests {
		if got := normalizeGrade(tc.input); got != tc.want {
			t.Errorf("normalizeGrade(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}
