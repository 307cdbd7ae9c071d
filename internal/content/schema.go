// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package content

//go:generate go run ../../cmd/gen-schema -out ../../schemas

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Schema kinds.
const (
	SchemaManifest = "manifest"
	SchemaDocument = "document"
)

// SchemaID returns the $id of the schema of kind.
func SchemaID(kind string) string {
	return "https://cataclysmbn.org/schemas/" + kind + ".schema.json"
}

// GenerateSchema returns the JSON Schema of kind, generated from the Go
// types.
func GenerateSchema(kind string) ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	var schema *jsonschema.Schema
	switch kind {
	case SchemaManifest:
		schema = r.Reflect(&Manifest{})
		schema.Title = "Content pack manifest"
		schema.Description = "Schema for pack.yaml files"
	case SchemaDocument:
		schema = r.Reflect(&Document{})
		schema.Title = "Content pack data file"
		schema.Description = "Schema for the YAML data files of a content pack"
	default:
		return nil, oops.Code(CodeInvalidContent).With("kind", kind).Errorf("unknown schema kind %q", kind)
	}
	schema.ID = jsonschema.ID(SchemaID(kind))

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.With("kind", kind).Wrapf(err, "marshal schema")
	}
	return data, nil
}

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jschema.Schema{}
)

func compiledSchema(kind string) (*jschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if sch, ok := schemaCache[kind]; ok {
		return sch, nil
	}

	raw, err := GenerateSchema(kind)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, oops.With("kind", kind).Wrapf(err, "parse schema")
	}
	c := jschema.NewCompiler()
	if err := c.AddResource(SchemaID(kind), doc); err != nil {
		return nil, oops.With("kind", kind).Wrapf(err, "add schema resource")
	}
	sch, err := c.Compile(SchemaID(kind))
	if err != nil {
		return nil, oops.With("kind", kind).Wrapf(err, "compile schema")
	}
	schemaCache[kind] = sch
	return sch, nil
}

func validate(kind string, data []byte) error {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return oops.Code(CodeInvalidContent).With("schema", kind).Wrapf(err, "invalid YAML")
	}
	if v == nil {
		// An empty file is an empty document.
		v = map[string]any{}
	}
	sch, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	if err := sch.Validate(toJSON(v)); err != nil {
		return oops.Code(CodeInvalidContent).With("schema", kind).Wrapf(err, "schema validation failed")
	}
	return nil
}

// ValidateManifest checks pack.yaml data against the manifest schema.
func ValidateManifest(data []byte) error { return validate(SchemaManifest, data) }

// ValidateDocument checks a data file against the document schema.
func ValidateDocument(data []byte) error { return validate(SchemaDocument, data) }

// toJSON normalizes YAML values to the types encoding/json produces.
func toJSON(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = toJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toJSON(e)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return val
	}
}
