package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dnordby/reportscan/internal/report"
)

// Parser converts raw report bytes into a report.Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*report.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
// Condition reports arrive almost exclusively as PDF; the remaining
// formats cover exports and test fixtures.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
