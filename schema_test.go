package settings

import (
	"testing"
)

func TestDefaultSchemaGenerator(t *testing.T) {
	registry := NewRegistry()
	registry.Add(Declaration{
		Name:    "logLevel",
		Help:    "minimum level emitted",
		Kind:    KindMap,
		Default: "info",
		Map: map[string]any{
			"debug": "debug",
			"info":  "info",
		},
	})
	registry.Add(Declaration{
		Name:    "port",
		Kind:    KindNumber,
		Default: 8080,
		Minimum: MinValue(1),
		Maximum: MaxValue(65535),
	})

	doc, err := DefaultSchemaGenerator().Generate(registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Format != SchemaFormatDescriptors {
		t.Fatalf("unexpected format: %v", doc.Format)
	}

	descriptors, ok := doc.Document.([]FieldDescriptor)
	if !ok {
		t.Fatalf("unexpected document type: %T", doc.Document)
	}
	if len(descriptors) != 2 {
		t.Fatalf("expected two descriptors, got %d", len(descriptors))
	}

	// Sorted by name: logLevel first.
	level := descriptors[0]
	if level.Name != "logLevel" || level.Type != "map" || level.Help != "minimum level emitted" {
		t.Fatalf("unexpected descriptor: %+v", level)
	}
	if len(level.Enum) != 2 || level.Enum[0] != "debug" || level.Enum[1] != "info" {
		t.Fatalf("expected deterministic enum ordering, got %v", level.Enum)
	}

	port := descriptors[1]
	if port.Type != "number" || port.Minimum == nil || *port.Minimum != 1 || port.Maximum == nil || *port.Maximum != 65535 {
		t.Fatalf("unexpected descriptor: %+v", port)
	}
}

func TestDefaultSchemaGeneratorNilRegistry(t *testing.T) {
	doc, err := DefaultSchemaGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	descriptors := doc.Document.([]FieldDescriptor)
	if len(descriptors) != 0 {
		t.Fatalf("expected empty document, got %v", descriptors)
	}
}

func TestSchemaExcludesCompilerSlots(t *testing.T) {
	registry := NewRegistry()
	doc, err := DefaultSchemaGenerator().Generate(registry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	descriptors := doc.Document.([]FieldDescriptor)
	for _, descriptor := range descriptors {
		switch descriptor.Name {
		case CompilerFiles, CompilerOptionsName, CompilerProjectReferences:
			t.Fatalf("compiler slot %q leaked into schema", descriptor.Name)
		}
	}
}
