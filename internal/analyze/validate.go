package analyze

import (
	"regexp"
	"strings"

	"github.com/dnordby/reportscan/internal/points"
)

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
		`new\s+instructions)`,
)

const (
	minTitleLen       = 3
	maxTitleLen       = 120
	maxDescriptionLen = 2000
)

// ValidateFinding checks a model-produced finding before it enters the
// pipeline. Returns true if valid; oversized optional fields are
// trimmed in place rather than rejected.
func ValidateFinding(f *points.Finding) bool {
	if f == nil {
		return false
	}
	title := strings.TrimSpace(f.Title)
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return false
	}
	if !f.Severity.Valid() {
		return false
	}
	if injectionPattern.MatchString(title) || injectionPattern.MatchString(f.Description) {
		return false
	}
	if len(f.Description) > maxDescriptionLen {
		f.Description = f.Description[:maxDescriptionLen]
	}
	if len(f.Suggestion) > maxDescriptionLen {
		f.Suggestion = f.Suggestion[:maxDescriptionLen]
	}
	return true
}
