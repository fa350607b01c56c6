// Package history records per-file fill jobs in a local sqlite database.
// The records are a run log, not aggregation state: no later run reads them
// to change behavior.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tendertools/tender-autofill/constants"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS fill_job (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	file_ext       TEXT NOT NULL,
	content_sha256 TEXT NOT NULL,
	format         TEXT NOT NULL,
	method         TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	matched_tags   INTEGER NOT NULL DEFAULT 0,
	error          TEXT NOT NULL DEFAULT '',
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS fill_job_source_path ON fill_job (source_path);
`

// Job is one fill_job row.
type Job struct {
	ID          uuid.UUID
	SourcePath  string
	FileExt     string
	HashHex     string
	Format      string
	Method      string
	Status      constants.JobStatus
	MatchedTags int
	Error       string
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Store wraps the sqlite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the history database at path, creating the schema if needed.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	logger.Debug("history.open", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Start inserts a RUNNING job and returns its ID.
func (s *Store) Start(ctx context.Context, sourcePath, fileExt, hashHex, format string, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fill_job (id, source_path, file_ext, content_sha256, format, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), sourcePath, fileExt, hashHex, format,
		string(constants.JobStatusRunning), startedAt.UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert fill_job: %w", err)
	}
	return id, nil
}

// FinishSuccess marks the job FILLED or EMPTY with the extraction method and
// the number of tags that matched.
func (s *Store) FinishSuccess(ctx context.Context, id uuid.UUID, status constants.JobStatus, method string, matchedTags int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE fill_job SET status = ?, method = ?, matched_tags = ?, finished_at = ? WHERE id = ?`,
		string(status), method, matchedTags, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("finish fill_job: %w", err)
	}
	return nil
}

// FinishFailure marks the job FAILED with the error message.
func (s *Store) FinishFailure(ctx context.Context, id uuid.UUID, msg string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE fill_job SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(constants.JobStatusFailed), msg, time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("fail fill_job: %w", err)
	}
	return nil
}

// CountByStatus reports how many recorded jobs carry the given status.
func (s *Store) CountByStatus(ctx context.Context, status constants.JobStatus) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fill_job WHERE status = ?`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count fill_job: %w", err)
	}
	return n, nil
}

// Get fetches one job by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	var (
		j        Job
		idStr    string
		status   string
		finished sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_path, file_ext, content_sha256, format, method, status,
		        matched_tags, error, started_at, finished_at
		 FROM fill_job WHERE id = ?`, id.String()).
		Scan(&idStr, &j.SourcePath, &j.FileExt, &j.HashHex, &j.Format, &j.Method,
			&status, &j.MatchedTags, &j.Error, &j.StartedAt, &finished)
	if err != nil {
		return nil, fmt.Errorf("get fill_job: %w", err)
	}
	j.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse fill_job id: %w", err)
	}
	j.Status = constants.JobStatus(status)
	if finished.Valid {
		t := finished.Time
		j.FinishedAt = &t
	}
	return &j, nil
}
