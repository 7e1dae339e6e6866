package template

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// templateJSONSchema returns the JSON-Schema (draft 2020-12 subset) that
// template definition files must satisfy. Structural validation happens here;
// semantic checks (duplicate fields, unknown vocabularies, bad regexes) run
// afterwards in compile.
func templateJSONSchema() map[string]any {
	ruleProps := map[string]any{
		"id":      map[string]any{"type": "string", "minLength": 1},
		"type":    map[string]any{"type": "string", "enum": []any{"pattern", "proximity", "table"}},
		"pattern": map[string]any{"type": "string"},
		"keyword": map[string]any{"type": "string"},
		"window":  map[string]any{"type": "integer", "minimum": 0},
		"table":   map[string]any{"type": "string"},
	}
	fieldProps := map[string]any{
		"name":       map[string]any{"type": "string", "minLength": 1},
		"section":    map[string]any{"type": "string"},
		"weight":     map[string]any{"type": "number", "minimum": 0.0},
		"vocabulary": map[string]any{"type": "string"},
		"rules": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           ruleProps,
				"required":             []any{"id", "type"},
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "minLength": 1},
			"version": map[string]any{"type": "integer", "minimum": 1},
			"fields": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           fieldProps,
					"required":             []any{"name", "rules"},
				},
			},
		},
		"required": []any{"name", "version", "fields"},
	}
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
