// Package extraction turns uploaded receipt documents into plain text for
// the parser. The document is read fully and synchronously; the only state
// is scoped to a single call.
package extraction

// TextExtractor defines the interface for document text extraction
type TextExtractor interface {
	// ExtractText extracts all text from a document, concatenating pages
	// with newline separators
	ExtractText(data []byte, contentType string) (string, error)
	// Close closes the extractor and releases resources
	Close() error
}
