package document

import (
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// extractXLSX flattens every sheet into comma-joined lines so the tagger
// sees cell values next to their row labels.
func extractXLSX(path string) (TextExtractionResult, error) {
	res := TextExtractionResult{Method: "xlsx-cells"}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return res, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("sheet %q: %v", sheet, err))
			continue
		}
		res.Units++
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ","))
			sb.WriteString("\n")
		}
	}
	res.Text = sb.String()
	return res, nil
}

// extractXLS does the same for the legacy BIFF format.
func extractXLS(path, charset string) (TextExtractionResult, error) {
	res := TextExtractionResult{Method: "xls-cells"}
	wb, err := xls.Open(path, charset)
	if err != nil {
		return res, fmt.Errorf("open xls: %w", err)
	}

	var sb strings.Builder
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		res.Units++
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			var cells []string
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			sb.WriteString(strings.Join(cells, ","))
			sb.WriteString("\n")
		}
	}
	res.Text = sb.String()
	return res, nil
}
