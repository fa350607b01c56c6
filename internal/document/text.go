package document

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// extractText reads .txt and .csv as-is. Files that are not valid UTF-8 are
// decoded as latin-1 rather than rejected.
func extractText(path string) (TextExtractionResult, error) {
	res := TextExtractionResult{Method: "plain-text", Units: 1}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read text file: %w", err)
	}
	if utf8.Valid(data) {
		res.Text = string(data)
		return res, nil
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	res.Text = string(runes)
	res.Warnings = append(res.Warnings, "not valid UTF-8, decoded as latin-1")
	return res, nil
}
