package interfaces

import "context"

// PDFPageContent holds the extracted text of a single PDF page.
type PDFPageContent struct {
	PageNumber int // 1-indexed
	Text       string
}

// PDFExtractor extracts plain text from PDF files, page by page.
type PDFExtractor interface {
	// ExtractPages returns the text of every page of the PDF at path.
	// Pages with no extractable text are returned with empty Text.
	ExtractPages(ctx context.Context, path string) ([]PDFPageContent, error)
}
