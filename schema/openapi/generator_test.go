package openapi_test

import (
	"testing"

	settings "github.com/goliatone/go-settings"
	"github.com/goliatone/go-settings/schema/openapi"
)

func TestGenerate(t *testing.T) {
	registry := settings.NewRegistry()
	registry.Add(settings.Declaration{
		Name:    "port",
		Help:    "listen port",
		Kind:    settings.KindNumber,
		Default: 8080,
		Minimum: settings.MinValue(1),
		Maximum: settings.MaxValue(65535),
	})
	registry.Add(settings.Declaration{
		Name: "logLevel",
		Kind: settings.KindMap,
		Map: map[string]any{
			"debug": "debug",
			"info":  "info",
		},
	})
	registry.Add(settings.Declaration{Name: "include", Kind: settings.KindArray})
	registry.Add(settings.Declaration{Name: "features", Kind: settings.KindFlags})

	doc, err := openapi.NewGenerator().Generate(registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Format != settings.SchemaFormatOpenAPI {
		t.Fatalf("unexpected format: %v", doc.Format)
	}

	document := doc.Document.(map[string]any)
	if document["type"] != "object" {
		t.Fatalf("expected object root, got %v", document["type"])
	}
	properties := document["properties"].(map[string]any)

	port := properties["port"].(map[string]any)
	if port["type"] != "number" || port["minimum"] != 1.0 || port["maximum"] != 65535.0 {
		t.Fatalf("unexpected port schema: %v", port)
	}
	if port["description"] != "listen port" || port["default"] != 8080 {
		t.Fatalf("expected description and default, got %v", port)
	}

	level := properties["logLevel"].(map[string]any)
	enum := level["enum"].([]any)
	if len(enum) != 2 || enum[0] != "debug" || enum[1] != "info" {
		t.Fatalf("expected deterministic enum, got %v", enum)
	}

	include := properties["include"].(map[string]any)
	if include["type"] != "array" {
		t.Fatalf("unexpected include schema: %v", include)
	}

	features := properties["features"].(map[string]any)
	if features["type"] != "object" {
		t.Fatalf("unexpected features schema: %v", features)
	}
	additional := features["additionalProperties"].(map[string]any)
	if additional["type"] != "boolean" {
		t.Fatalf("expected boolean flag values, got %v", additional)
	}
}

func TestGenerateNilRegistry(t *testing.T) {
	doc, err := openapi.NewGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	document := doc.Document.(map[string]any)
	properties := document["properties"].(map[string]any)
	if len(properties) != 0 {
		t.Fatalf("expected empty properties, got %v", properties)
	}
}

func TestGenerateExcludesCompilerSlots(t *testing.T) {
	registry := settings.NewRegistry()
	doc, err := openapi.NewGenerator().Generate(registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	properties := doc.Document.(map[string]any)["properties"].(map[string]any)
	for _, name := range []string{settings.CompilerFiles, settings.CompilerOptionsName, settings.CompilerProjectReferences} {
		if _, ok := properties[name]; ok {
			t.Fatalf("compiler slot %q leaked into schema", name)
		}
	}
}
