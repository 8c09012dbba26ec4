package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Tilstandsrapport

Intro text.

## 4 Utvendig

Utvendig content.

### 4.2 Taktekking

Taktekking content.

## 5 Våtrom

Våtrom content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "rapport.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "rapport" {
		t.Errorf("expected title %q, got %q", "rapport", doc.Title)
	}

	// Top level: one h1.
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 top-level section (h1), got %d", len(doc.Sections))
	}

	h1 := doc.Sections[0]
	if h1.Heading != "Tilstandsrapport" {
		t.Errorf("expected h1 heading %q, got %q", "Tilstandsrapport", h1.Heading)
	}
	if !strings.Contains(h1.Text, "Intro text.") {
		t.Errorf("expected h1 text to contain %q, got %q", "Intro text.", h1.Text)
	}

	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	utv := h1.Children[0]
	if utv.Heading != "4 Utvendig" {
		t.Errorf("expected %q, got %q", "4 Utvendig", utv.Heading)
	}
	if !strings.Contains(utv.Text, "Utvendig content.") {
		t.Errorf("expected body text, got %q", utv.Text)
	}

	if len(utv.Children) != 1 {
		t.Fatalf("expected 1 h3 child under 4 Utvendig, got %d", len(utv.Children))
	}
	if utv.Children[0].Heading != "4.2 Taktekking" {
		t.Errorf("expected %q, got %q", "4.2 Taktekking", utv.Children[0].Heading)
	}

	if h1.Children[1].Heading != "5 Våtrom" {
		t.Errorf("expected %q, got %q", "5 Våtrom", h1.Children[1].Heading)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No headings: all text collected into a single section.
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section for headingless markdown, got %d", len(doc.Sections))
	}

	text := doc.Sections[0].Text
	if !strings.Contains(text, "Just some plain text.") {
		t.Errorf("expected text to contain first paragraph, got %q", text)
	}
	if !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("expected text to contain second paragraph, got %q", text)
	}
}

func TestMarkdownParser_MixedContentWithCodeBlocks(t *testing.T) {
	input := "# Vedlegg\n\nSome intro.\n\n## Måledata\n\nVerdier:\n\n```\nfukt: 14%\ntemp: 21C\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "vedlegg.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(doc.Sections))
	}

	h1 := doc.Sections[0]
	if h1.Heading != "Vedlegg" {
		t.Errorf("expected heading %q, got %q", "Vedlegg", h1.Heading)
	}

	if len(h1.Children) != 1 {
		t.Fatalf("expected 1 h2 child, got %d", len(h1.Children))
	}

	data := h1.Children[0]
	if data.Heading != "Måledata" {
		t.Errorf("expected heading %q, got %q", "Måledata", data.Heading)
	}
	if !strings.Contains(data.Text, "fukt: 14%") {
		t.Errorf("expected code block content in text, got %q", data.Text)
	}
	if !strings.Contains(data.Text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", data.Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(doc.Sections))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
