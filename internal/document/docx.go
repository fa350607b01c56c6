package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var xmlTag = regexp.MustCompile(`<[^>]*>`)

// extractDOCX pulls the document body out of the DOCX container. GetContent
// returns the raw WordprocessingML, so paragraph closers become newlines
// before the remaining markup is stripped.
func extractDOCX(path string) (TextExtractionResult, error) {
	res := TextExtractionResult{Method: "docx-xml", Units: 1}
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return res, fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	res.Text = strings.TrimSpace(xmlTag.ReplaceAllString(content, " "))
	return res, nil
}
