// Package schema holds the declarative validation rules for items and
// the project aggregate, and compiles them into reusable validators.
//
// The rules themselves are plain JSON Schema documents embedded from
// schemas/. Adding a new item kind means adding one schema file there
// and one entry in kindSources below; nothing else changes.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/codetrail/devtrack/models"
	"github.com/codetrail/devtrack/types"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// kindSources maps each item kind to its embedded schema document.
var kindSources = map[models.ItemKind]string{
	models.KindFeature: "feature.json",
	models.KindBug:     "bug.json",
	models.KindTask:    "task.json",
}

const (
	baseSource    = "base.json"
	projectSource = "project.json"
)

var (
	kindSchemas   map[models.ItemKind]*jsonschema.Schema
	projectSchema *jsonschema.Schema
)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	addResource(compiler, baseSource)
	addResource(compiler, projectSource)
	for _, src := range kindSources {
		addResource(compiler, src)
	}

	kindSchemas = make(map[models.ItemKind]*jsonschema.Schema, len(kindSources))
	for kind, src := range kindSources {
		kindSchemas[kind] = mustCompile(compiler, src)
	}
	projectSchema = mustCompile(compiler, projectSource)
}

func addResource(c *jsonschema.Compiler, name string) {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded document %s missing: %v", name, err))
	}
	if err := c.AddResource(name, strings.NewReader(string(data))); err != nil {
		panic(fmt.Sprintf("schema: add resource %s: %v", name, err))
	}
}

func mustCompile(c *jsonschema.Compiler, name string) *jsonschema.Schema {
	sch, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: compile %s: %v", name, err))
	}
	return sch
}

// Result is the structured outcome of a validation check.
type Result struct {
	Valid  bool
	Errors []types.FieldError
}

// Err converts a failed result into a typed ValidationError for the
// given subject, or nil when the result is valid.
func (r *Result) Err(subject string) error {
	if r.Valid {
		return nil
	}
	return types.NewValidationError(subject, r.Errors)
}

// ValidateItem checks a candidate value against the schema for the
// given kind. The value may be a concrete item struct or a field map;
// both go through a JSON round trip so they validate identically.
func ValidateItem(kind models.ItemKind, value any) *Result {
	sch, ok := kindSchemas[kind]
	if !ok {
		return &Result{Errors: []types.FieldError{{Message: fmt.Sprintf("no schema registered for kind %q", kind)}}}
	}
	return validate(sch, value)
}

// ValidateProject checks a candidate value against the aggregate
// schema, recursively validating all three collections and metadata.
func ValidateProject(value any) *Result {
	return validate(projectSchema, value)
}

// validate never panics: malformed input is reported as a failed result.
func validate(sch *jsonschema.Schema, value any) *Result {
	raw, err := json.Marshal(value)
	if err != nil {
		return &Result{Errors: []types.FieldError{{Message: fmt.Sprintf("value is not representable as JSON: %v", err)}}}
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return &Result{Errors: []types.FieldError{{Message: fmt.Sprintf("value is not valid JSON: %v", err)}}}
	}

	if err := sch.Validate(decoded); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return &Result{Errors: []types.FieldError{{Message: err.Error()}}}
		}
		var fields []types.FieldError
		collectLeafErrors(ve, &fields)
		return &Result{Errors: fields}
	}
	return &Result{Valid: true}
}

// collectLeafErrors walks the cause tree and keeps only leaf causes,
// which carry the most specific message and instance location.
func collectLeafErrors(err *jsonschema.ValidationError, out *[]types.FieldError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, types.FieldError{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectLeafErrors(cause, out)
	}
}

// pointerToPath converts a JSON pointer ("/features/2/storyPoints")
// into the dotted path form used in error reports.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}
