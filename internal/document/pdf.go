package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads embedded text page by page. The pdf library can panic on
// malformed files, so the whole read is panic-guarded to keep a directory
// walk alive.
func extractPDF(path string) (res TextExtractionResult, err error) {
	res.Method = "pdf-text"
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return res, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	total := reader.NumPage()
	res.Units = total
	for i := 1; i <= total; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, perr := p.GetPlainText(nil)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	res.Text = sb.String()
	return res, nil
}
