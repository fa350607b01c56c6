// Package pipeline walks a documents directory and turns each readable file
// into one row on the output workbook's master sheet.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendertools/tender-autofill/constants"
	"github.com/tendertools/tender-autofill/internal/common"
	"github.com/tendertools/tender-autofill/internal/document"
	"github.com/tendertools/tender-autofill/internal/history"
	"github.com/tendertools/tender-autofill/internal/row"
	"github.com/tendertools/tender-autofill/internal/rules"
	"github.com/tendertools/tender-autofill/internal/schema"
	"github.com/tendertools/tender-autofill/internal/tagger"
	"github.com/tendertools/tender-autofill/internal/workbook"
)

// FileResult is the per-file fill outcome.
type FileResult struct {
	SourcePath  string
	Method      string
	MatchedTags int
	Status      constants.JobStatus
	Err         string
}

// Stats summarizes a directory run.
type Stats struct {
	Scanned uint32
	Matched uint32
	Filled  uint32
	Empty   uint32
	Failed  uint32
}

// Processor ties the stages together: read text, tag, build row, append.
// Files are handled one at a time, in walk order; a bad file is recorded
// and skipped, never fatal.
type Processor struct {
	Extractor  document.TextExtractor
	Rules      *rules.Set
	Schema     *schema.Schema
	History    *history.Store // nil disables job records
	SkipHidden bool
	Logger     *slog.Logger

	now func() time.Time
}

func NewProcessor(extractor document.TextExtractor, ruleSet *rules.Set, s *schema.Schema, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Extractor:  extractor,
		Rules:      ruleSet,
		Schema:     s,
		SkipHidden: true,
		Logger:     logger,
		now:        time.Now,
	}
}

// Run walks root and appends one row per document that yields text.
// Returns per-file results plus aggregate stats.
func (p *Processor) Run(ctx context.Context, root string, w *workbook.Writer) ([]FileResult, Stats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, Stats{}, common.NewAppError("INVALID_INPUT",
			"docs directory is required", common.ErrInvalidInput)
	}

	var results []FileResult
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if walkErr != nil {
			results = append(results, FileResult{
				SourcePath: path, Status: constants.JobStatusFailed, Err: walkErr.Error(),
			})
			stats.Scanned++
			stats.Failed++
			return nil
		}
		if p.SkipHidden && isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		stats.Matched++

		r := p.processFile(ctx, path, ext, w)
		results = append(results, r)
		switch r.Status {
		case constants.JobStatusFilled:
			stats.Filled++
		case constants.JobStatusEmpty:
			stats.Empty++
		default:
			stats.Failed++
		}
		return nil
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

func (p *Processor) processFile(ctx context.Context, path, ext string, w *workbook.Writer) FileResult {
	out := FileResult{SourcePath: path}
	started := p.now()
	format := constants.MapExtToFormat(ext)

	var jobID uuid.UUID
	if p.History != nil {
		hashHex, err := hashFile(path)
		if err != nil {
			p.Logger.Warn("fill.hash.failed", "path", path, "error", err)
		}
		jobID, err = p.History.Start(ctx, path, ext, hashHex, format, started)
		if err != nil {
			p.Logger.Warn("fill.history.start_failed", "path", path, "error", err)
			jobID = uuid.Nil
		}
	}

	res, err := p.Extractor.Extract(ctx, path)
	out.Method = res.Method
	if err != nil {
		out.Status = constants.JobStatusFailed
		out.Err = err.Error()
		p.Logger.Warn("fill.file.unreadable", "path", path, "error", err)
		p.finishFailure(ctx, jobID, err.Error())
		return out
	}
	if strings.TrimSpace(res.Text) == "" {
		out.Status = constants.JobStatusEmpty
		p.Logger.Warn("fill.file.no_text", "path", path, "method", res.Method)
		p.finishSuccess(ctx, jobID, constants.JobStatusEmpty, res.Method, 0)
		return out
	}

	values := tagger.Extract(res.Text, p.Rules)
	out.MatchedTags = len(values)
	values.SetDefault("source_file", filepath.Base(path))
	values.SetDefault("ingested_at", p.now().Format("2006-01-02T15:04:05"))

	if err := w.Append(row.Build(p.Schema, values)); err != nil {
		out.Status = constants.JobStatusFailed
		out.Err = err.Error()
		p.Logger.Error("fill.row.append_failed", "path", path, "error", err)
		p.finishFailure(ctx, jobID, err.Error())
		return out
	}

	out.Status = constants.JobStatusFilled
	p.Logger.Info("fill.file.ok",
		"path", path,
		"method", res.Method,
		"units", res.Units,
		"tags", out.MatchedTags,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)
	p.finishSuccess(ctx, jobID, constants.JobStatusFilled, res.Method, out.MatchedTags)
	return out
}

func (p *Processor) finishSuccess(ctx context.Context, jobID uuid.UUID, status constants.JobStatus, method string, matched int) {
	if p.History == nil || jobID == uuid.Nil {
		return
	}
	if err := p.History.FinishSuccess(ctx, jobID, status, method, matched); err != nil {
		p.Logger.Warn("fill.history.finish_failed", "job_id", jobID, "error", err)
	}
}

func (p *Processor) finishFailure(ctx context.Context, jobID uuid.UUID, msg string) {
	if p.History == nil || jobID == uuid.Nil {
		return
	}
	if err := p.History.FinishFailure(ctx, jobID, msg); err != nil {
		p.Logger.Warn("fill.history.finish_failed", "job_id", jobID, "error", err)
	}
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
