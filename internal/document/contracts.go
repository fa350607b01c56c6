package document

import (
	"context"
	"time"
)

// TextExtractor is the single stage this tool needs: file -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Units      int    // pages for PDF, sheets for workbooks, 1 otherwise
	SourceType string // constants.PDF | DOCX | XLSX | XLS | TEXT
	Method     string // "pdf-text" | "docx-xml" | "xlsx-cells" | "xls-cells" | "plain-text"
	Duration   time.Duration
	Warnings   []string
}
