package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendertools/tender-autofill/constants"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	started := time.Now().UTC().Truncate(time.Second)
	id, err := s.Start(ctx, "/docs/tender.pdf", "pdf", "abc123", constants.PDF, started)
	require.NoError(t, err)

	require.NoError(t, s.FinishSuccess(ctx, id, constants.JobStatusFilled, "pdf-text", 7))

	j, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, j.ID)
	assert.Equal(t, "/docs/tender.pdf", j.SourcePath)
	assert.Equal(t, "pdf", j.FileExt)
	assert.Equal(t, "abc123", j.HashHex)
	assert.Equal(t, constants.PDF, j.Format)
	assert.Equal(t, "pdf-text", j.Method)
	assert.Equal(t, constants.JobStatusFilled, j.Status)
	assert.Equal(t, 7, j.MatchedTags)
	assert.Empty(t, j.Error)
	require.NotNil(t, j.FinishedAt)
}

func TestJobFailure(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	id, err := s.Start(ctx, "/docs/broken.docx", "docx", "", constants.DOCX, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.FinishFailure(ctx, id, "open docx: not a zip"))

	j, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, j.Status)
	assert.Equal(t, "open docx: not a zip", j.Error)
}

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	for i := 0; i < 3; i++ {
		id, err := s.Start(ctx, "/docs/a.txt", "txt", "", constants.TEXT, time.Now())
		require.NoError(t, err)
		require.NoError(t, s.FinishSuccess(ctx, id, constants.JobStatusFilled, "plain-text", 1))
	}
	id, err := s.Start(ctx, "/docs/b.txt", "txt", "", constants.TEXT, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.FinishFailure(ctx, id, "boom"))

	filled, err := s.CountByStatus(ctx, constants.JobStatusFilled)
	require.NoError(t, err)
	assert.Equal(t, 3, filled)

	failed, err := s.CountByStatus(ctx, constants.JobStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
}
