package openapi

import (
	"sort"

	settings "github.com/goliatone/go-settings"
)

type generator struct{}

// NewGenerator constructs an OpenAPI-compatible schema generator driven by
// declaration metadata rather than reflection.
func NewGenerator() settings.SchemaGenerator {
	return generator{}
}

func (generator) Generate(registry *settings.Registry) (settings.SchemaDocument, error) {
	properties := map[string]any{}
	if registry != nil {
		for _, decl := range registry.All() {
			properties[decl.Name] = schemaForDeclaration(decl)
		}
	}
	document := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	return settings.SchemaDocument{
		Format:   settings.SchemaFormatOpenAPI,
		Document: document,
	}, nil
}

func schemaForDeclaration(decl *settings.Declaration) map[string]any {
	schema := map[string]any{}

	switch decl.Kind {
	case settings.KindBoolean:
		schema["type"] = "boolean"
	case settings.KindNumber:
		schema["type"] = "number"
		if decl.Minimum != nil {
			schema["minimum"] = *decl.Minimum
		}
		if decl.Maximum != nil {
			schema["maximum"] = *decl.Maximum
		}
	case settings.KindString:
		schema["type"] = "string"
	case settings.KindMap:
		schema["enum"] = enumValues(decl.Map)
	case settings.KindArray:
		schema["type"] = "array"
		schema["items"] = map[string]any{"type": "string"}
	case settings.KindFlags:
		schema["type"] = "object"
		schema["additionalProperties"] = map[string]any{"type": "boolean"}
	case settings.KindObject:
		schema["type"] = "object"
	case settings.KindMixed:
		// no type constraint; any JSON value is legal
	}

	if decl.Help != "" {
		schema["description"] = decl.Help
	}
	if decl.Default != nil {
		schema["default"] = decl.Default
	}
	return schema
}

// enumValues flattens a mapping's legal value set in key order so generated
// documents are deterministic.
func enumValues(mapping map[string]any) []any {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		out = append(out, mapping[key])
	}
	return out
}
