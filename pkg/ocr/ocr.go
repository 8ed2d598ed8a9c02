// Package ocr defines the boundary to upstream document text
// extraction. The cleaning pipeline consumes plain text; callers with
// scanned sources plug an Extractor in front of it.
package ocr

import "context"

// Page is one extracted page of a document.
type Page struct {
	Number int
	Text   string
}

// Extractor converts a raw document into per-page text.
type Extractor interface {
	Extract(ctx context.Context, doc []byte) ([]Page, error)
}
