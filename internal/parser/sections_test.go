package parser

import (
	"strings"
	"testing"
)

func TestSectionize_SplitsOnNumberedHeadings(t *testing.T) {
	text := `Innledning uten nummer.

4 Utvendig
Beskrivelse av fasade.

4.2 Taktekking
Tekkingen er slitt. TG: 2

11.1.3) Drenering
Fall mot grunnmur.`

	sections := sectionize(text, 3)
	if len(sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(sections))
	}

	if sections[0].Heading != "" {
		t.Errorf("preamble should have no heading, got %q", sections[0].Heading)
	}
	wantHeadings := []string{"4 Utvendig", "4.2 Taktekking", "11.1.3) Drenering"}
	for i, w := range wantHeadings {
		if sections[i+1].Heading != w {
			t.Errorf("section[%d]: expected heading %q, got %q", i+1, w, sections[i+1].Heading)
		}
	}

	for i, s := range sections {
		if s.Page != 3 {
			t.Errorf("section[%d]: expected page 3, got %d", i, s.Page)
		}
	}

	if !strings.Contains(sections[2].Text, "TG: 2") {
		t.Errorf("expected body under heading, got %q", sections[2].Text)
	}
}

func TestSectionize_LongNumberedLineIsBody(t *testing.T) {
	long := "4 " + strings.Repeat("lang setning om bygningsdel ", 5) + "som fortsetter."
	if len(long) <= maxHeadingLen {
		t.Fatalf("fixture line too short: %d", len(long))
	}
	sections := sectionize("4.1 Kort heading\n"+long, 1)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].Text, "lang setning") {
		t.Errorf("long numbered line should stay in body, got %q", sections[0].Text)
	}
}

func TestSectionize_BareNumberIsNotHeading(t *testing.T) {
	// A number with no following text is a page artifact, not a heading.
	sections := sectionize("42\nSome body text.", 1)
	if len(sections) != 1 {
		t.Fatalf("expected 1 preamble section, got %d", len(sections))
	}
	if sections[0].Heading != "" {
		t.Errorf("expected no heading, got %q", sections[0].Heading)
	}
}

func TestSectionize_EmptyText(t *testing.T) {
	if got := sectionize("", 1); len(got) != 0 {
		t.Errorf("expected no sections, got %d", len(got))
	}
	if got := sectionize("   \n  \n", 1); len(got) != 0 {
		t.Errorf("expected no sections for whitespace, got %d", len(got))
	}
}

func TestSectionize_HeadingWithEmptyBody(t *testing.T) {
	sections := sectionize("4 Utvendig\n5 Våtrom\nInnhold.", 1)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Text != "" {
		t.Errorf("expected empty body for first heading, got %q", sections[0].Text)
	}
	if sections[1].Text != "Innhold." {
		t.Errorf("expected body %q, got %q", "Innhold.", sections[1].Text)
	}
}
