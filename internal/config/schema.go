package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema describes the JSON form of the configuration. Structural
// checks only; semantic rules (known key names, parseable colors) stay in
// Validate so every format goes through them.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "width": {"type": "integer", "minimum": 1},
    "height": {"type": "integer", "minimum": 1},
    "bg_color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "bg_alpha": {"type": "number"},
    "rows": {
      "type": "array",
      "maxItems": 4,
      "items": {
        "type": "object",
        "properties": {
          "key": {"type": "string"},
          "color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
          "enabled": {"type": "boolean"}
        },
        "additionalProperties": false
      }
    },
    "logging": {
      "type": "object",
      "properties": {
        "level": {"enum": ["debug", "info", "warn", "error"]},
        "format": {"enum": ["text", "json"]},
        "output": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

var compiledSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("keyline-config.schema.json", strings.NewReader(configSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("keyline-config.schema.json")
}()

// validateJSONSchema checks a JSON config document against the schema.
func validateJSONSchema(data []byte) error {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return compiledSchema.Validate(instance)
}
