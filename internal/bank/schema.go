package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON Schema every bank file must satisfy before
// decoding. Semantic rules (letter ranges, id uniqueness, follow-up
// grouping) are enforced separately in checkQuestion.
var bankSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string", "minLength": 1},
			"section": map[string]any{"type": "string", "minLength": 1},
			"question": map[string]any{
				"type": "string", "minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"correctAnswer": map[string]any{"type": "string", "minLength": 1},
			"hint":          map[string]any{"type": "string"},
			"feedback": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct_hint":      map[string]any{"type": "string"},
					"incorrect_hint":    map[string]any{"type": "string"},
					"correct_no_hint":   map[string]any{"type": "string"},
					"incorrect_no_hint": map[string]any{"type": "string"},
				},
				"required": []any{"correct_hint", "incorrect_hint", "correct_no_hint", "incorrect_no_hint"},
			},
			"followUpQuestion": map[string]any{"type": "string"},
			"followUpOptions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"followUpAnswer": map[string]any{"type": "string"},
		},
		"required":             []any{"id", "section", "question", "options", "correctAnswer", "feedback"},
		"additionalProperties": false,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledBankSchema compiles the bank schema once per process.
func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any),
		// not raw bytes. Round-trip to get a clean representation.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateBank checks raw JSON against the bank schema.
func validateBank(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
