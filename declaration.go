package settings

import "fmt"

// Kind identifies the value shape a declaration accepts. The tag set is
// closed; validation is per kind.
type Kind uint8

const (
	// KindBoolean accepts a bool.
	KindBoolean Kind = iota
	// KindNumber accepts a numeric value. Range bounds are advisory.
	KindNumber
	// KindString accepts a string.
	KindString
	// KindMap accepts one of the values of the declaration's mapping.
	KindMap
	// KindMixed accepts any value.
	KindMixed
	// KindArray accepts an ordered list of strings.
	KindArray
	// KindObject accepts a string-keyed map.
	KindObject
	// KindFlags accepts a map of boolean toggles.
	KindFlags
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindMixed:
		return "mixed"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Category splits the option universe in two: ordinary options flow through
// the generic per-name path, compiler-reserved options are bulk-only.
type Category uint8

const (
	// CategoryOrdinary options are read and written one name at a time.
	CategoryOrdinary Category = iota
	// CategoryCompiler options are excluded from the generic path and only
	// reachable through SetCompilerOptions / CompilerHost.
	CategoryCompiler
)

// Declaration is the static metadata for one option: its name, kind,
// default, and kind-specific constraints. Names are unique per registry.
//
// Defaults are accepted as declared; they are not checked against Minimum,
// Maximum, or Map membership. Only values passed to SetValue are validated.
type Declaration struct {
	Name     string
	Help     string
	Kind     Kind
	Default  any
	Minimum  *float64
	Maximum  *float64
	Map      map[string]any
	Category Category
}

// MinValue returns a pointer suitable for Declaration.Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue returns a pointer suitable for Declaration.Maximum.
func MaxValue(v float64) *float64 {
	return &v
}

// Validate checks value against the declaration's kind. Number range bounds
// are advisory and deliberately not enforced here, mirroring the
// declaration-time default policy.
func (d *Declaration) Validate(value any) error {
	switch d.Kind {
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case KindNumber:
		if !isNumeric(value) {
			return fmt.Errorf("expected number, got %T", value)
		}
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case KindMap:
		if !containsMapValue(d.Map, value) {
			return fmt.Errorf("value %v must be one of %v", value, mapValues(d.Map))
		}
	case KindArray:
		switch typed := value.(type) {
		case []string:
		case []any:
			for _, item := range typed {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("expected string array, got array with %T element", item)
				}
			}
		default:
			return fmt.Errorf("expected string array, got %T", value)
		}
	case KindObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	case KindFlags:
		switch typed := value.(type) {
		case map[string]bool:
		case map[string]any:
			for key, item := range typed {
				if _, ok := item.(bool); !ok {
					return fmt.Errorf("expected boolean flag for %q, got %T", key, item)
				}
			}
		default:
			return fmt.Errorf("expected flags map, got %T", value)
		}
	case KindMixed:
		// Accepts anything.
	}
	return nil
}

// defaultValue returns the declared default, substituting a structural
// default for container kinds so bulk snapshots always carry a value.
func (d *Declaration) defaultValue() any {
	if d.Default != nil {
		return d.Default
	}
	switch d.Kind {
	case KindArray:
		return []string{}
	case KindObject:
		return map[string]any{}
	case KindFlags:
		return map[string]bool{}
	default:
		return d.Default
	}
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func containsMapValue(mapping map[string]any, value any) bool {
	for _, candidate := range mapping {
		if candidate == value {
			return true
		}
	}
	return false
}

func mapValues(mapping map[string]any) []any {
	out := make([]any, 0, len(mapping))
	for _, value := range mapping {
		out = append(out, value)
	}
	return out
}

// numericValue converts any supported numeric value to float64 for range
// inspection.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// InRange reports whether value sits inside the advisory [Minimum, Maximum]
// bounds. Non-numeric values and unbounded declarations are always in range.
func (d *Declaration) InRange(value any) bool {
	f, ok := numericValue(value)
	if !ok {
		return true
	}
	if d.Minimum != nil && f < *d.Minimum {
		return false
	}
	if d.Maximum != nil && f > *d.Maximum {
		return false
	}
	return true
}
