package storage

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://todo-manager.local/schemas/"

// SchemaProblem is one failed schema assertion.
type SchemaProblem struct {
	Path    string
	Message string
}

// SchemaError lists why a stored document does not match its schema.
type SchemaError struct {
	Key      string
	Problems []SchemaProblem
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Path == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, p.Path+": "+p.Message)
	}
	return fmt.Sprintf("document %q does not match its schema: %s", e.Key, strings.Join(parts, "; "))
}

// SchemaValidator checks raw documents against the embedded schemas.
type SchemaValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewSchemaValidator compiles the schema of every known document key.
func NewSchemaValidator() (*SchemaValidator, error) {
	files := map[string]string{
		TasksKey:   "tasks.schema.json",
		FoldersKey: "folders.schema.json",
	}

	compiler := jsonschema.NewCompiler()
	for _, file := range files {
		data, err := schemaFS.ReadFile("schemas/" + file)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", file, err)
		}
		if err := compiler.AddResource(schemaBaseURL+file, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", file, err)
		}
	}

	v := &SchemaValidator{schemas: make(map[string]*jsonschema.Schema, len(files))}
	for key, file := range files {
		schema, err := compiler.Compile(schemaBaseURL + file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		v.schemas[key] = schema
	}
	return v, nil
}

// Validate checks raw against the schema registered for key. Keys without a
// schema only need to be well-formed JSON.
func (v *SchemaValidator) Validate(key string, raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	schema, ok := v.schemas[key]
	if !ok {
		return nil
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	schemaErr := &SchemaError{Key: key}
	collectSchemaProblems(schemaErr, ve)
	return schemaErr
}

func collectSchemaProblems(result *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Problems = append(result.Problems, SchemaProblem{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaProblems(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	segments := strings.Split(ptr, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		segments[i] = strings.ReplaceAll(seg, "~0", "~")
	}
	return strings.Join(segments, ".")
}
