package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains the authoring blob loosely: known keys must have a
// usable shape, unknown keys (including option_<n>_misconception) pass.
const configSchema = `{
  "type": "object",
  "definitions": {
    "numeric": {"type": ["number", "string"]},
    "code": {"type": "string", "minLength": 1}
  },
  "properties": {
    "option_misconceptions": {
      "type": ["object", "array"],
      "additionalProperties": {"$ref": "#/definitions/code"},
      "items": {"type": ["string", "null"]}
    },
    "default_misconception": {"$ref": "#/definitions/code"},
    "remediation_targets": {
      "type": ["array", "string"],
      "items": {"$ref": "#/definitions/code"}
    },
    "blanks": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number"]}
    },
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": ["string", "number"]},
          "target_group": {"type": "string"},
          "correct_position": {"$ref": "#/definitions/numeric"}
        }
      }
    },
    "expected_order": {"type": "array", "items": {"type": ["string", "number"]}},
    "target_value": {"$ref": "#/definitions/numeric"},
    "expected_value": {"$ref": "#/definitions/numeric"},
    "rows": {"$ref": "#/definitions/numeric"},
    "cols": {"$ref": "#/definitions/numeric"},
    "segments": {"$ref": "#/definitions/numeric"},
    "shape": {"enum": ["grid", "pie"]},
    "target_count": {"$ref": "#/definitions/numeric"},
    "numerator": {"$ref": "#/definitions/numeric"},
    "denominator": {"$ref": "#/definitions/numeric"},
    "content": {"type": "string"}
  },
  "patternProperties": {
    "^option_[0-9]+_misconception$": {"$ref": "#/definitions/code"}
  }
}`

const configSchemaURL = "schema://question-config.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledConfigSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(configSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(configSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(configSchemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateConfig checks an authoring blob against the config schema.
// An empty blob is valid. The engine never calls this; it is applied when
// content enters the catalog.
func ValidateConfig(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledConfigSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}
	return nil
}

// MarshalConfigMap encodes a decoded blob (from YAML or JSON) back to JSON
// for storage and validation.
func MarshalConfigMap(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}
