package parser

import (
	"regexp"
	"strings"

	"github.com/dnordby/reportscan/internal/report"
)

// headingLineRe matches a numbered heading line as printed in Norwegian
// condition reports: "4 Utvendig", "4.2 Taktekking", "11.1.3) Drenering".
var headingLineRe = regexp.MustCompile(`^\d+(?:\.\d+)*[.)]?\s+\S`)

// maxHeadingLen keeps long numbered body sentences from being taken
// for headings.
const maxHeadingLen = 90

// sectionize splits flowing page text into sections at numbered heading
// lines. Text before the first heading becomes an unnamed preamble
// section. The result is flat; hierarchy is expressed by the numeric
// identifiers themselves.
func sectionize(text string, page int) []*report.Section {
	var sections []*report.Section
	var cur *report.Section
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		body = nil
		if cur != nil {
			cur.Text = content
			sections = append(sections, cur)
			cur = nil
			return
		}
		if content != "" {
			sections = append(sections, &report.Section{Text: content, Page: page})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= maxHeadingLen && headingLineRe.MatchString(trimmed) {
			flush()
			cur = &report.Section{Heading: trimmed, Page: page}
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}
