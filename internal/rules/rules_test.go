package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsDocumentOrder(t *testing.T) {
	set, err := Parse([]byte(`
project_name:
  - 'Name of Work\s*[:\-]\s*(?P<value>.+)'
  - 'Project\s*[:\-]\s*(?P<value>.+)'
capacity_mw:
  - 'Capacity[^0-9]{0,20}(?P<value>\d+)\s*MW'
`), nil)
	require.NoError(t, err)
	require.Len(t, set.Tags, 2)
	assert.Equal(t, "project_name", set.Tags[0].Tag)
	assert.Equal(t, "capacity_mw", set.Tags[1].Tag)
	assert.Len(t, set.Tags[0].Patterns, 2)
	assert.Equal(t, 3, set.PatternCount())
}

func TestParseSkipsBadPattern(t *testing.T) {
	set, err := Parse([]byte(`
capacity_mw:
  - '(['
  - 'Capacity[^0-9]{0,20}(?P<value>\d+)\s*MW'
`), nil)
	require.NoError(t, err)
	require.Len(t, set.Tags, 1)
	assert.Len(t, set.Tags[0].Patterns, 1)
}

func TestParseScalarPattern(t *testing.T) {
	set, err := Parse([]byte(`capacity_mw: '(?P<value>\d+)\s*MW'`), nil)
	require.NoError(t, err)
	require.Len(t, set.Tags, 1)
	assert.Len(t, set.Tags[0].Patterns, 1)
}

func TestParseNormalizesAndDeduplicatesTags(t *testing.T) {
	set, err := Parse([]byte(`
Capacity MW:
  - 'first (?P<value>\d+)'
capacity_mw:
  - 'second (?P<value>\d+)'
`), nil)
	require.NoError(t, err)
	// Both keys normalize to capacity_mw; the first wins.
	require.Len(t, set.Tags, 1)
	assert.Equal(t, "capacity_mw", set.Tags[0].Tag)
	assert.Equal(t, `(?im)first (?P<value>\d+)`, set.Tags[0].Patterns[0].String())
}

func TestParseDropsTagWithNoUsablePatterns(t *testing.T) {
	set, err := Parse([]byte(`
broken:
  - '(['
good:
  - 'ok'
`), nil)
	require.NoError(t, err)
	require.Len(t, set.Tags, 1)
	assert.Equal(t, "good", set.Tags[0].Tag)
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"), nil)
	require.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	set, err := Parse([]byte(""), nil)
	require.NoError(t, err)
	assert.Empty(t, set.Tags)
}
