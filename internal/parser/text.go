package parser

import (
	"io"
	"strings"

	"github.com/dnordby/reportscan/internal/report"
)

// TextParser handles plain-text report exports.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &report.Document{
		Title: strings.TrimSuffix(filename, ".txt"),
	}

	// Plain text carries no page markers; everything lands on page 1.
	doc.Sections = sectionize(string(data), 1)
	return doc, nil
}
