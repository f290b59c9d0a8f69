package config

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsoncsv/internal/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema describes the layout of a config file. Enumerated values are
// checked by Validate so that they can be normalized first.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "input":   {"type": "string"},
    "output":  {"type": "string"},
    "lenient": {"type": "boolean"},
    "header": {
      "type": ["object", "null"],
      "additionalProperties": false,
      "properties": {
        "case": {"type": "string"}
      }
    },
    "logging": {
      "type": ["object", "null"],
      "additionalProperties": false,
      "properties": {
        "level":  {"type": "string"},
        "format": {"type": "string"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(configSchema)

// checkSchema rejects unknown keys and mistyped values in raw YAML.
func checkSchema(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(problems, "; "))
}
