// Package detect scans a parsed condition report and produces the
// detected-points set for it. Detection runs once per document content
// hash; the resulting set is frozen before any findings are generated
// against it and is never re-derived mid-pipeline.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dnordby/reportscan/internal/points"
	"github.com/dnordby/reportscan/internal/report"
)

// headingRe matches a dotted numeric identifier at the start of a
// heading, e.g. "4.2 Taktekking" or "11.1.3) Drenering".
var headingRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)[.)]?\s+(.*)$`)

// gradeRe captures a TG condition grade mentioned in a heading or body,
// e.g. "TG2", "TG 3", "TG: IU".
var gradeRe = regexp.MustCompile(`(?i)\bTG\s*:?\s*(IU|[0-3])\b`)

// Points walks a parsed report and returns its detected points in
// reading order. Point keys are sequential and stable because detection
// runs exactly once per content hash.
func Points(doc *report.Document) []points.DetectedPoint {
	var out []points.DetectedPoint
	var path []string

	order := 0
	doc.Walk(func(s *report.Section, depth int) {
		order++

		// Maintain the breadcrumb for native_path.
		if len(path) >= depth {
			path = path[:depth-1]
		}
		label := strings.TrimSpace(s.Heading)
		if label != "" {
			path = append(path, label)
		}

		numericID, title := splitHeading(label)
		p := points.DetectedPoint{
			PointKey:    fmt.Sprintf("pt-%04d", order),
			NumericID:   numericID,
			NativeLabel: label,
			NativePath:  strings.Join(path, " > "),
			Title:       title,
			Kind:        classifyKind(s, numericID),
			TG:          extractGrade(label, s.Text),
			OrderInDoc:  order,
			PageStart:   s.Page,
			AnchorText:  anchor(label, s.Text),
		}
		out = append(out, p)
	})
	return out
}

// Texts returns each point's section body text keyed by point key. The
// walk order matches Points, so keys line up with the frozen snapshot
// when both are derived from the same parsed document.
func Texts(doc *report.Document) map[string]string {
	out := make(map[string]string)
	order := 0
	doc.Walk(func(s *report.Section, depth int) {
		order++
		out[fmt.Sprintf("pt-%04d", order)] = s.Text
	})
	return out
}

// splitHeading separates a numeric identifier from the heading title.
// Headings without a numeric prefix keep their full text as title.
func splitHeading(heading string) (numericID, title string) {
	m := headingRe.FindStringSubmatch(heading)
	if m == nil {
		return "", heading
	}
	return m[1], strings.TrimSpace(m[2])
}

// classifyKind maps structural shape to a point kind. Top-level
// numbered headings are chapter sections; deeper numbered headings are
// points and sub-points. Unnumbered sections with body text are opaque
// points; pure containers are scaffolding.
func classifyKind(s *report.Section, numericID string) points.Kind {
	if numericID != "" {
		switch depth := strings.Count(numericID, ".") + 1; {
		case depth == 1:
			return points.KindSection
		case depth == 2:
			return points.KindPoint
		default:
			return points.KindSubpoint
		}
	}
	if strings.TrimSpace(s.Text) != "" {
		return points.KindPoint
	}
	if len(s.Children) > 0 {
		return points.KindSection
	}
	return points.KindOther
}

// extractGrade finds the first TG grade mentioned in the heading or
// body. The heading wins when both carry one.
func extractGrade(heading, body string) points.Grade {
	for _, text := range []string{heading, body} {
		m := gradeRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch strings.ToUpper(m[1]) {
		case "0":
			return points.GradeTG0
		case "1":
			return points.GradeTG1
		case "2":
			return points.GradeTG2
		case "3":
			return points.GradeTG3
		case "IU":
			return points.GradeTGIU
		}
	}
	return points.GradeNone
}

// anchor returns a short text fragment locating the point in the page.
func anchor(heading, body string) string {
	s := heading
	if s == "" {
		s = body
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}
