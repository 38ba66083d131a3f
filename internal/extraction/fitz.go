package extraction

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// FitzExtractor extracts text from PDF documents using MuPDF via go-fitz.
// Plain-text payloads pass through untouched, which keeps the parser usable
// from a terminal or a test without a real PDF.
type FitzExtractor struct{}

// NewFitzExtractor creates a new FitzExtractor
func NewFitzExtractor() *FitzExtractor {
	return &FitzExtractor{}
}

// ExtractText extracts the text of every page and joins the non-empty pages
// with newlines. The document is always closed, even when a page fails to
// render. An unreadable document yields a wrapped error and no partial text.
func (e *FitzExtractor) ExtractText(data []byte, contentType string) (string, error) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/plain") {
		return string(data), nil
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening document: %w", err)
	}
	defer doc.Close()

	var text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageText, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", page, err)
		}
		// Scanned pages with no text layer come back empty; skip them.
		if pageText == "" {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), nil
}

// Close releases extractor resources. The fitz extractor holds none between
// calls.
func (e *FitzExtractor) Close() error {
	return nil
}
