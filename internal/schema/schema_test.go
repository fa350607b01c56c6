package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`{
		"detected_master_sheet": "Master",
		"columns": ["Project Name", "Project Capacity (MW)", "EMD Amount, Rs."]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Master", s.MasterSheet)
	assert.Equal(t, []string{"Project Name", "Project Capacity (MW)", "EMD Amount, Rs."}, s.Columns)
	assert.Equal(t, []string{"project_name", "project_capacity_mw", "emd_amount_rs"}, s.Keys())
}

func TestParseDefaultsMasterSheet(t *testing.T) {
	s, err := Parse([]byte(`{"columns": ["A"]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultMasterSheet, s.MasterSheet)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing columns", `{"detected_master_sheet": "Master"}`},
		{"empty columns", `{"columns": []}`},
		{"non-string column", `{"columns": ["A", 7]}`},
		{"blank column", `{"columns": [""]}`},
		{"not an object", `["A", "B"]`},
		{"not json", `columns: [A]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Project Name", "project_name"},
		{"Project Capacity (MW)", "project_capacity_mw"},
		{"EMD Amount, Rs.", "emd_amount_rs"},
		{"  Bid   Submission Deadline ", "bid_submission_deadline"},
		{"capacity_mw", "capacity_mw"},
		{"___", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "NormalizeKey(%q)", tt.in)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := &Schema{MasterSheet: "Master", Columns: []string{"A", "B"}}
	out, err := s.Marshal()
	require.NoError(t, err)
	got, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
