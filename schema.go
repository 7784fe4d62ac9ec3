package settings

import "sort"

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator transforms a declaration registry into a schema document.
// Implementations must handle nil registries by returning an empty document.
type SchemaGenerator interface {
	Generate(registry *Registry) (SchemaDocument, error)
}

// FieldDescriptor describes one declared option for documentation surfaces.
type FieldDescriptor struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Help    string   `json:"help,omitempty"`
	Default any      `json:"default,omitempty"`
	Enum    []any    `json:"enum,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(registry *Registry) (SchemaDocument, error) {
	descriptors := []FieldDescriptor{}
	if registry != nil {
		for _, decl := range registry.All() {
			descriptors = append(descriptors, describeDeclaration(decl))
		}
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: descriptors,
	}, nil
}

func describeDeclaration(decl *Declaration) FieldDescriptor {
	descriptor := FieldDescriptor{
		Name:    decl.Name,
		Type:    decl.Kind.String(),
		Help:    decl.Help,
		Default: decl.Default,
		Minimum: decl.Minimum,
		Maximum: decl.Maximum,
	}
	if decl.Kind == KindMap {
		descriptor.Enum = sortedMapValues(decl.Map)
	}
	return descriptor
}

// sortedMapValues flattens a mapping's legal value set in key order so
// generated documents are deterministic.
func sortedMapValues(mapping map[string]any) []any {
	if len(mapping) == 0 {
		return nil
	}
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
