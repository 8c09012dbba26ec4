package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dnordby/reportscan/internal/report"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx condition reports.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "reportscan-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &report.Document{
		Title: strings.TrimSuffix(filename, ".docx"),
	}

	type stackEntry struct {
		node  *report.Section
		level int
	}
	root := &report.Section{Heading: doc.Title}
	stack := []stackEntry{{node: root, level: 0}}
	var currentText strings.Builder

	flushText := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			top := stack[len(stack)-1].node
			if top.Text != "" {
				top.Text += "\n\n" + t
			} else {
				top.Text = t
			}
		}
		currentText.Reset()
	}

	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		// Check if paragraph has a heading style.
		level := docxHeadingLevel(para)
		text := docxParagraphText(para)

		if level > 0 && text != "" {
			flushText()
			sec := &report.Section{Heading: text}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, sec)
			stack = append(stack, stackEntry{node: sec, level: level})
		} else if text != "" {
			if currentText.Len() > 0 {
				currentText.WriteString("\n\n")
			}
			currentText.WriteString(text)
		}
	}
	flushText()

	doc.Sections = root.Children
	if len(doc.Sections) == 0 && root.Text != "" {
		doc.Sections = []*report.Section{{Text: root.Text}}
	}

	return doc, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for lvl := 1; lvl <= 6; lvl++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", lvl)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", lvl)) {
			return lvl
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
