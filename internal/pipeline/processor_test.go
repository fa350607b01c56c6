package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tendertools/tender-autofill/constants"
	"github.com/tendertools/tender-autofill/internal/common"
	"github.com/tendertools/tender-autofill/internal/document"
	"github.com/tendertools/tender-autofill/internal/history"
	"github.com/tendertools/tender-autofill/internal/rules"
	"github.com/tendertools/tender-autofill/internal/schema"
	"github.com/tendertools/tender-autofill/internal/workbook"
)

const testRules = `
project_name:
  - 'Name of Work\s*:\s*(?P<value>.+)'
project_capacity_mw:
  - 'Capacity\s*:\s*(?P<value>\d+)\s*MW'
`

func testSchema() *schema.Schema {
	return &schema.Schema{
		MasterSheet: "Master",
		Columns:     []string{"Project Name", "Project Capacity (MW)", "Source File", "Ingested At"},
	}
}

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	set, err := rules.Parse([]byte(testRules), nil)
	require.NoError(t, err)
	extractor := document.NewExtractor(document.Config{}, nil)
	p := NewProcessor(extractor, set, testSchema(), nil)
	p.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return p
}

func writeDocs(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"),
		[]byte("Name of Work: Lakhwar Hydro Project\nCapacity: 450 MW\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"),
		[]byte("   \n"), 0o644)) // whitespace only -> EMPTY
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.bin"),
		[]byte("ignored"), 0o644)) // unsupported extension
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"),
		[]byte("Name of Work: ghost"), 0o644)) // hidden, skipped
}

func TestRunFillsOneRowPerReadableDocument(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	s := testSchema()
	w, err := workbook.Open("", s, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	p := newTestProcessor(t)
	results, stats, err := p.Run(context.Background(), dir, w)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), stats.Matched)
	assert.Equal(t, uint32(1), stats.Filled)
	assert.Equal(t, uint32(1), stats.Empty)
	assert.Equal(t, uint32(0), stats.Failed)
	require.Len(t, results, 2)

	require.NoError(t, w.Save(out, len(s.Columns)))
	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Master")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Lakhwar Hydro Project", "450", "a.txt", "2026-03-14T09:30:00",
	}, rows[1])
}

func TestRunIncludesHiddenWhenAsked(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)

	w, err := workbook.Open("", testSchema(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	p := newTestProcessor(t)
	p.SkipHidden = false
	_, stats, err := p.Run(context.Background(), dir, w)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(2), stats.Filled)
}

func TestRunRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)
	ctx := context.Background()

	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "h.db"), nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	w, err := workbook.Open("", testSchema(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	p := newTestProcessor(t)
	p.History = store
	_, _, err = p.Run(ctx, dir, w)
	require.NoError(t, err)

	filled, err := store.CountByStatus(ctx, constants.JobStatusFilled)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)
	empty, err := store.CountByStatus(ctx, constants.JobStatusEmpty)
	require.NoError(t, err)
	assert.Equal(t, 1, empty)
}

func TestRunRecordsUnreadableFileAndContinues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"),
		[]byte("not a pdf at all"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"),
		[]byte("Name of Work: Lakhwar Hydro Project\nCapacity: 450 MW\n"), 0o644))

	w, err := workbook.Open("", testSchema(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	p := newTestProcessor(t)
	results, stats, err := p.Run(context.Background(), dir, w)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), stats.Failed)
	assert.Equal(t, uint32(1), stats.Filled)
	require.Len(t, results, 2)
	assert.Equal(t, constants.JobStatusFailed, results[0].Status)
	assert.NotEmpty(t, results[0].Err)
	assert.Equal(t, constants.JobStatusFilled, results[1].Status)
	assert.Equal(t, 1, w.Appended())
}

func TestRunRequiresRoot(t *testing.T) {
	p := newTestProcessor(t)
	_, _, err := p.Run(context.Background(), "  ", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRunCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := workbook.Open("", testSchema(), nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	p := newTestProcessor(t)
	_, _, err = p.Run(ctx, dir, w)
	require.Error(t, err)
}
