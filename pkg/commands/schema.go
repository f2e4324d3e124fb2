package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const exportSchemaURL = "todoshell-export.schema.json"

// exportSchema describes the JSON written by HandleExportCommand
const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["items"],
  "properties": {
    "lists": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["uuid", "name"],
        "properties": {
          "uuid": {"type": "string"},
          "name": {"type": "string", "minLength": 1}
        }
      }
    },
    "items": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["subject"],
        "properties": {
          "uuid": {"type": "string"},
          "todoListUuid": {"type": "string"},
          "subject": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "completed": {"type": "boolean"},
          "isPriority": {"type": "boolean"},
          "archived": {"type": "boolean"},
          "due": {"type": ["string", "null"]},
          "kanbanColumn": {"type": "string"}
        }
      }
    }
  }
}`

// validateExport checks content against the export schema and joins every
// violation into one error
func validateExport(content []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(exportSchemaURL, strings.NewReader(exportSchema)); err != nil {
		return fmt.Errorf("load export schema: %w", err)
	}
	schema, err := compiler.Compile(exportSchemaURL)
	if err != nil {
		return fmt.Errorf("compile export schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("decode JSON export: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var problems []string
		collectSchemaErrors(ve, &problems)
		return fmt.Errorf("invalid export file: %s", strings.Join(problems, "; "))
	}
	return nil
}

func collectSchemaErrors(err *jsonschema.ValidationError, problems *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*problems = append(*problems, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, problems)
	}
}
