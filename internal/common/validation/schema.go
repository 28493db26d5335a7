// Package validation checks job variables against the JSON schemas declared
// for each task type.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Messages flattens the result into "field: message" strings.
func (r *ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return out
}

// Validator holds one compiled schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every schema up front so a broken registry fails at
// startup rather than on the first job.
func NewValidator(schemas map[string]interface{}) (*Validator, error) {
	compiled := make(map[string]*gojsonschema.Schema, len(schemas))
	for taskType, raw := range schemas {
		if raw == nil {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", taskType, err)
		}
		compiled[taskType] = schema
	}
	return &Validator{schemas: compiled}, nil
}

// HasSchema reports whether taskType has a registered input schema.
func (v *Validator) HasSchema(taskType string) bool {
	_, ok := v.schemas[taskType]
	return ok
}

// Validate checks the raw job variables for taskType. Task types without a
// schema always validate.
func (v *Validator) Validate(taskType string, variables []byte) (*ValidationResult, error) {
	schema, ok := v.schemas[taskType]
	if !ok {
		return &ValidationResult{Valid: true}, nil
	}
	if len(variables) == 0 {
		variables = []byte("{}")
	}
	if !json.Valid(variables) {
		return nil, fmt.Errorf("job variables are not valid JSON")
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(variables))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", taskType, err)
	}
	return toResult(res), nil
}

// ValidateDocument validates doc against a schema that is not registered,
// such as one loaded by a CLI.
func ValidateDocument(schema interface{}, doc interface{}) (*ValidationResult, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

// CompileSchema reports whether schema is a usable JSON schema.
func CompileSchema(schema interface{}) error {
	_, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	return err
}

func toResult(res *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		field := e.Field()
		if field == "(root)" {
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: e.Description(),
			Code:    e.Type(),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out
}
