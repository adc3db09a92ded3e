package assets

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// ErrAssetInvalid is returned when an asset does not match its schema.
var ErrAssetInvalid = errors.New("assets: asset does not match schema")

// Issue is one schema violation.
type Issue struct {
	Location string
	Message  string
}

// SchemaError lists the schema violations found in an asset.
type SchemaError struct {
	Asset  string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("assets: %s: %s", e.Asset, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrAssetInvalid
}

var (
	schemasOnce sync.Once
	schemas     map[Kind]*jsonschema.Schema
	schemasErr  error
)

func schemaFor(kind Kind) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas, schemasErr = compileSchemas()
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	return schemas[kind], nil
}

func compileSchemas() (map[Kind]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	names := map[Kind]string{
		KindScript:     "sq_script.schema.json",
		KindLocalePack: "locale_pack.schema.json",
	}
	for _, name := range names {
		data, err := schemaFiles.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("assets: read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("assets: add schema %s: %w", name, err)
		}
	}

	compiled := make(map[Kind]*jsonschema.Schema, len(names))
	for kind, name := range names {
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("assets: compile schema %s: %w", name, err)
		}
		compiled[kind] = schema
	}
	return compiled, nil
}

// validateDocument checks data against the schema registered for kind.
func validateDocument(kind Kind, asset string, data []byte) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("assets: decode %s: %w", asset, err)
	}
	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaError{Asset: asset, Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("assets: validate %s: %w", asset, err)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
