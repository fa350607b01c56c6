// Package schema loads the output column layout learned from a reference
// workbook's master sheet.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultMasterSheet is used when the columns file does not name one.
const DefaultMasterSheet = "Master"

// Schema is the ordered column layout of the master sheet.
type Schema struct {
	MasterSheet string   `json:"detected_master_sheet"`
	Columns     []string `json:"columns"`
}

// columnsFileSchema returns the JSON-Schema (draft 2020-12 subset) that the
// columns file must satisfy.
func columnsFileSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"detected_master_sheet": map[string]any{"type": "string", "minLength": 1},
			"columns": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"columns"},
	}
}

// validateAgainstSchema validates "data" against "schemaMap".
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// Load reads and validates a columns JSON file.
func Load(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns file: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a columns JSON document.
func Parse(raw []byte) (*Schema, error) {
	if err := validateAgainstSchema(columnsFileSchema(), raw); err != nil {
		return nil, fmt.Errorf("columns file: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode columns file: %w", err)
	}
	if s.MasterSheet == "" {
		s.MasterSheet = DefaultMasterSheet
	}
	return &s, nil
}

// Keys returns the normalized join key for every column, aligned by index.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		keys[i] = NormalizeKey(col)
	}
	return keys
}

// Marshal renders the schema back to indented JSON, for `schema derive`.
func (s *Schema) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode columns file: %w", err)
	}
	return append(out, '\n'), nil
}
