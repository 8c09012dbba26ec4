package analyze

import (
	"fmt"
	"strings"

	"github.com/dnordby/reportscan/internal/points"
)

const findingPrompt = `Du er en bygningssakkyndig som kvalitetssikrer en tilstandsrapport. Vurder rapportteksten for punktet nedenfor og returner en JSON-liste med funn. Hvert funn-objekt skal ha disse feltene:

- "severity": en av "critical", "high", "medium", "low"
- "title": kort tittel på funnet (maks 120 tegn, norsk)
- "description": hva som er avdekket og hvorfor det er et avvik
- "suggestion": anbefalt tiltak for kjøper eller selger
- "standard_reference": referanse til NS 3600 eller forskrift, eller tom streng
- "tg": tilstandsgrad hvis teksten oppgir en ("TG0"-"TG3" eller "TGIU"), ellers tom streng

Regler:
- Rapporter kun konkrete avvik som fremgår av teksten, ikke spekulasjon
- "critical" er forbeholdt forhold med fare for liv, helse eller store følgeskader
- Ett funn per distinkt avvik
- Returner en tom liste [] hvis punktet er uten anmerkninger

Svar med KUN JSON-listen, ingen annen tekst.`

// BuildSectionPrompt creates the full prompt for analyzing one detected
// point, including the report title and the point's location context.
func BuildSectionPrompt(docTitle string, pt points.DetectedPoint, sectionText string) string {
	var sb strings.Builder
	sb.WriteString(findingPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Rapport: %q\n", docTitle))
	if pt.NativeLabel != "" {
		sb.WriteString(fmt.Sprintf("Punkt: %s", pt.NativeLabel))
		if pt.Title != "" {
			sb.WriteString(" " + pt.Title)
		}
		sb.WriteString("\n")
	} else if pt.Title != "" {
		sb.WriteString("Punkt: " + pt.Title + "\n")
	}
	if pt.PageStart > 0 {
		sb.WriteString(fmt.Sprintf("Side: %d\n", pt.PageStart))
	}
	sb.WriteString("---\n")
	sb.WriteString(sectionText)
	return sb.String()
}

// MaxSectionChars bounds the section text sent per prompt.
const MaxSectionChars = 12000

// TruncateSection shortens long section text while keeping both ends:
// the opening usually carries the assessment and grade, the closing the
// evaluator's recommendation. 60% of the budget goes to the head, the
// rest to the tail.
func TruncateSection(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = MaxSectionChars
	}
	if len(text) <= maxChars {
		return text
	}

	const marker = "\n[...utelatt...]\n"
	budget := maxChars - len(marker)
	if budget < 2 {
		return text[:maxChars]
	}
	head := budget * 6 / 10
	tail := budget - head
	return text[:head] + marker + text[len(text)-tail:]
}
