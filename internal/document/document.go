// Package document turns tender files (PDF/DOCX/XLS/XLSX/TXT/CSV) into
// plain text for tagging.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tendertools/tender-autofill/constants"
	"github.com/tendertools/tender-autofill/internal/common"
)

type Config struct {
	MaxFileSize int64  // bytes; files larger than this are rejected; 0 = no limit
	XLSCharset  string // charset hint for legacy .xls; if empty -> "utf-8"
}

type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.XLSCharset == "" {
		cfg.XLSCharset = "utf-8"
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract picks a reader based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	e.logger.Debug("document.extract.start", "path", path, "ext", ext, "format", format)
	if format == "" {
		return TextExtractionResult{}, common.NewAppError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported extension: %q", ext), common.ErrUnsupported)
	}
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{SourceType: format}, err
	}
	if e.cfg.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return TextExtractionResult{SourceType: format}, fmt.Errorf("stat: %w", err)
		}
		if info.Size() > e.cfg.MaxFileSize {
			return TextExtractionResult{SourceType: format},
				fmt.Errorf("file size %d exceeds limit %d", info.Size(), e.cfg.MaxFileSize)
		}
	}

	var res TextExtractionResult
	var err error
	switch format {
	case constants.PDF:
		res, err = extractPDF(path)
	case constants.DOCX:
		res, err = extractDOCX(path)
	case constants.XLSX:
		res, err = extractXLSX(path)
	case constants.XLS:
		res, err = extractXLS(path, e.cfg.XLSCharset)
	case constants.TEXT:
		res, err = extractText(path)
	}
	res.SourceType = format
	res.Duration = time.Since(start)
	for _, w := range res.Warnings {
		e.logger.Warn("document.extract.warning", "path", path, "warning", w)
	}
	return res, err
}
