// Package workbook creates the output spreadsheet and appends filled rows to
// its master sheet.
package workbook

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/tendertools/tender-autofill/internal/schema"
)

// Writer accumulates rows on the master sheet of an in-memory workbook.
// Nothing touches disk until Save, so a failed run never half-writes the
// output file.
type Writer struct {
	f        *excelize.File
	sheet    string
	nextRow  int
	appended int
	logger   *slog.Logger
}

// Open prepares the output workbook. With a template the template is loaded
// and the schema's master sheet used, created with the header row when the
// template lacks it (or has it empty). Without a template a fresh workbook
// is started with just the header.
func Open(templatePath string, s *schema.Schema, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var f *excelize.File
	sheet := s.MasterSheet
	if templatePath != "" {
		var err error
		f, err = excelize.OpenFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("open template: %w", err)
		}
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet index: %w", err)
		}
		if idx == -1 {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			if err := writeHeader(f, sheet, s.Columns); err != nil {
				return nil, err
			}
			rows = [][]string{s.Columns}
		}
		w := &Writer{f: f, sheet: sheet, nextRow: len(rows) + 1, logger: logger}
		return w, w.activate()
	}

	f = excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeHeader(f, sheet, s.Columns); err != nil {
		return nil, err
	}
	w := &Writer{f: f, sheet: sheet, nextRow: 2, logger: logger}
	return w, w.activate()
}

func (w *Writer) activate() error {
	idx, err := w.f.GetSheetIndex(w.sheet)
	if err != nil {
		return fmt.Errorf("sheet index: %w", err)
	}
	w.f.SetActiveSheet(idx)
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	return nil
}

// Append writes one row below the last occupied row.
func (w *Writer) Append(row []string) error {
	for i, v := range row {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, w.nextRow)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	w.nextRow++
	w.appended++
	return nil
}

// Appended reports how many rows Append has written.
func (w *Writer) Appended() int { return w.appended }

// Sheet returns the master sheet name rows are written to.
func (w *Writer) Sheet() string { return w.sheet }

// Save widens the used columns a little and writes the workbook to path.
func (w *Writer) Save(path string, columnCount int) error {
	if columnCount > 0 {
		if last, err := excelize.ColumnNumberToName(columnCount); err == nil {
			_ = w.f.SetColWidth(w.sheet, "A", last, 22)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	w.logger.Info("workbook.saved", "path", path, "sheet", w.sheet, "rows", w.appended)
	return nil
}

// Close releases the in-memory workbook.
func (w *Writer) Close() error { return w.f.Close() }
