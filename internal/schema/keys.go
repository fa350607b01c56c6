package schema

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// NormalizeKey turns a column header or tag name into the key both sides
// join on: runs of non-alphanumerics collapse to "_", lowercased, trimmed.
//
//	"Project Capacity (MW)" -> "project_capacity_mw"
//	"EMD Amount, Rs."       -> "emd_amount_rs"
func NormalizeKey(name string) string {
	return strings.Trim(strings.ToLower(nonAlnum.ReplaceAllString(name, "_")), "_")
}
