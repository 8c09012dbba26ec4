package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dnordby/reportscan/internal/report"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML report exports.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*report.Document, error) {
	parsed, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &report.Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
	}

	// Extract title from <title> tag if present.
	if title := findTitle(parsed); title != "" {
		doc.Title = title
	}

	// Walk the HTML and build sections from heading tags.
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

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			level := headingLevel(n.Data)
			if level > 0 {
				flushText()
				heading := textContent(n)

				sec := &report.Section{Heading: heading}
				for len(stack) > 1 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, sec)
				stack = append(stack, stackEntry{node: sec, level: level})
				return // Don't recurse into heading children (already extracted text).
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				t := textContent(n)
				if t != "" {
					if currentText.Len() > 0 {
						currentText.WriteString("\n\n")
					}
					currentText.WriteString(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	body := findBody(parsed)
	if body != nil {
		walk(body)
	} else {
		walk(parsed)
	}
	flushText()

	doc.Sections = root.Children
	if len(doc.Sections) == 0 && root.Text != "" {
		doc.Sections = []*report.Section{{Text: root.Text}}
	}

	return doc, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
