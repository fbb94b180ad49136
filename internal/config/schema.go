package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const boardSchemaURL = "https://focusboard.local/board.schema.json"

const boardSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "viewer"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "title": {"type": "string"},
    "viewer": {"type": "string", "minLength": 1},
    "members": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"}
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "member"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "member": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "note": {"type": "string"},
          "done": {"type": "boolean"}
        }
      }
    },
    "log": {
      "type": "object",
      "properties": {
        "level": {"enum": ["debug", "info", "warn", "error"]},
        "format": {"enum": ["text", "json", "logfmt"]}
      }
    },
    "keys": {
      "type": "object",
      "properties": {
        "insert": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "note": {"type": "array", "items": {"type": "string", "minLength": 1}}
      }
    },
    "ui": {
      "type": "object",
      "properties": {
        "column_width": {"type": "integer", "minimum": 20, "maximum": 120},
        "show_log": {"type": "boolean"}
      }
    }
  }
}`

var compiledBoardSchema *jsonschema.Schema

func boardSchemaValidator() (*jsonschema.Schema, error) {
	if compiledBoardSchema != nil {
		return compiledBoardSchema, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(boardSchemaURL, strings.NewReader(boardSchema)); err != nil {
		return nil, fmt.Errorf("load board schema: %w", err)
	}
	schema, err := compiler.Compile(boardSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile board schema: %w", err)
	}
	compiledBoardSchema = schema
	return schema, nil
}

// validateSchema checks the decoded config against the board schema. YAML
// and TOML both decode into BoardConfig first, so the schema sees the same
// document shape for either format.
func validateSchema(bc BoardConfig) error {
	schema, err := boardSchemaValidator()
	if err != nil {
		return err
	}
	data, err := json.Marshal(bc)
	if err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode config for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collectSchemaMessages(ve, &msgs)
	if len(msgs) == 0 {
		return fmt.Errorf("schema: %s", ve.Message)
	}
	return fmt.Errorf("schema: %s", strings.Join(msgs, "; "))
}

func collectSchemaMessages(ve *jsonschema.ValidationError, msgs *[]string) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", jsonPointerToPath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaMessages(cause, msgs)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
