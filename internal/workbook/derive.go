package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tendertools/tender-autofill/internal/common"
	"github.com/tendertools/tender-autofill/internal/schema"
)

// DetectMasterSheet picks the sheet whose header defines the schema:
// the preferred name when present, else the first sheet whose name contains
// "master" (case-insensitive), else the first sheet. Empty workbook -> "".
func DetectMasterSheet(f *excelize.File, preferred string) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	if preferred != "" {
		for _, s := range sheets {
			if s == preferred {
				return s
			}
		}
	}
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(s), "master") {
			return s
		}
	}
	return sheets[0]
}

// Derive learns a column schema from the header row of a reference
// workbook's master sheet.
func Derive(path, sheetName string) (*schema.Schema, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := DetectMasterSheet(f, sheetName)
	if sheet == "" {
		return nil, fmt.Errorf("reference workbook has no sheets")
	}
	if sheetName != "" && sheet != sheetName {
		return nil, common.NewAppError("SHEET_NOT_FOUND",
			fmt.Sprintf("sheet %q not found in reference workbook", sheetName),
			common.ErrNotFound)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[0]
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row", sheet)
	}
	columns := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			// Dropping the cell would shift every later column left, so a
			// gap inside the header is an error, not a skip.
			return nil, fmt.Errorf("sheet %q: blank header cell at column %d", sheet, i+1)
		}
		columns = append(columns, h)
	}
	return &schema.Schema{MasterSheet: sheet, Columns: columns}, nil
}
