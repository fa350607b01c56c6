// Package row maps extracted tag values onto the output column order.
package row

import (
	"github.com/tendertools/tender-autofill/internal/schema"
	"github.com/tendertools/tender-autofill/internal/tagger"
)

// aliases lets a tag fill column headers that spell the same field
// differently. The column's normalized key is looked up in Keys; on a hit
// the tag's value is used.
var aliases = []struct {
	Tag  string
	Keys []string
}{
	{"project_name", []string{"project", "tender_name", "name_of_work"}},
	{"project_capacity_mw", []string{"capacity_mw", "capacity"}},
	{"storage_capacity_mwh", []string{"bess_mwh", "storage_mwh"}},
	{"bid_submission_deadline", []string{"submission_deadline", "bid_due_date"}},
	{"emd_amount_rs", []string{"emd", "earnest_money"}},
	{"pbg_percent_or_amount", []string{"pbg", "performance_bg"}},
	{"completion_time_months", []string{"completion_time", "time_for_completion"}},
	{"price_cap_rs_per_kwh", []string{"tariff_cap", "ceiling_tariff"}},
	{"interconnection_voltage_kv", []string{"grid_voltage_kv", "voltage_kv"}},
}

// Build returns one value per schema column, in column order. A column is
// filled by the tag matching its normalized key, else by an alias, else left
// blank.
func Build(s *schema.Schema, values tagger.Values) []string {
	out := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		key := schema.NormalizeKey(col)
		if v, ok := values[key]; ok {
			out[i] = v
			continue
		}
		out[i] = aliasValue(key, values)
	}
	return out
}

func aliasValue(columnKey string, values tagger.Values) string {
	for _, a := range aliases {
		for _, k := range a.Keys {
			if k != columnKey {
				continue
			}
			if v, ok := values[a.Tag]; ok {
				return v
			}
		}
	}
	return ""
}
