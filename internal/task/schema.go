package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema describes the persisted container: a JSON array of task
// objects with the five stored attributes.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Task snapshot",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "status", "createdAt", "updatedAt"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string"},
      "status": {"enum": ["todo", "in-progress", "done"]},
      "createdAt": {"type": "string"},
      "updatedAt": {"type": "string"}
    },
    "additionalProperties": false
  }
}`

// ValidationError represents a validation error with its location.
type ValidationError struct {
	Path string // dotted path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains the outcome of a snapshot validation.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// ValidateSnapshot validates raw snapshot bytes against the bundled JSON
// Schema. Invalid JSON counts as a validation failure, not a process error.
func ValidateSnapshot(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]error, 0),
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(snapshotSchema)); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("load bundled schema: %w", err))
		return result
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("compile bundled schema: %w", err))
		return result
	}

	var snapshot interface{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("invalid JSON: %w", err),
		})
		return result
	}

	if err := schema.Validate(snapshot); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer like "#/3/status" to a readable
// path like "[3].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
