package settings

import "fmt"

// Provider is implemented by consumer objects that own a value store.
type Provider interface {
	Settings() *Store
}

// Bound is a memoizing accessor for one option on one consumer instance.
// While the store is mutable every Value call is a live lookup; the first
// call observed after the store froze resolves once and pins the result, so
// later reads never touch the store. Caching is per accessor: two Bound
// values for the same option resolve independently.
type Bound[T any] struct {
	store    *Store
	property string
	option   string
	resolved bool
	cached   T
}

// Bind creates an accessor for option backed by store. The returned value is
// meant to live as a field on the consumer object.
func Bind[T any](store *Store, option string) *Bound[T] {
	return &Bound[T]{store: store, option: option}
}

// BindProperty creates an accessor through a Provider, recording the
// consumer-side property name for diagnostics.
func BindProperty[T any](owner Provider, property, option string) *Bound[T] {
	bound := Bind[T](owner.Settings(), option)
	bound.property = property
	return bound
}

// Value returns the current option value converted to T.
func (b *Bound[T]) Value() (T, error) {
	if b.resolved {
		return b.cached, nil
	}
	var zero T
	if b.store == nil {
		return zero, optionErr("bind", b.label(), ErrUnknownOption)
	}
	raw, err := b.store.GetValue(b.option)
	if err != nil {
		return zero, err
	}
	value, err := convertTo[T](b.option, raw)
	if err != nil {
		return zero, err
	}
	if b.store.Frozen() {
		b.cached = value
		b.resolved = true
	}
	return value, nil
}

// MustValue returns the option value or panics. Intended for accessors bound
// to names the caller declared itself.
func (b *Bound[T]) MustValue() T {
	value, err := b.Value()
	if err != nil {
		panic(err)
	}
	return value
}

// Resolved reports whether the accessor has pinned its post-freeze constant.
func (b *Bound[T]) Resolved() bool {
	return b.resolved
}

func (b *Bound[T]) label() string {
	if b.property != "" {
		return b.property
	}
	return b.option
}

// convertTo coerces a stored value to the accessor's type, widening across
// the numeric representations loaders commonly produce.
func convertTo[T any](name string, raw any) (T, error) {
	if value, ok := raw.(T); ok {
		return value, nil
	}

	var zero T
	var converted any
	switch any(zero).(type) {
	case int:
		if f, ok := numericValue(raw); ok {
			converted = int(f)
		}
	case int64:
		if f, ok := numericValue(raw); ok {
			converted = int64(f)
		}
	case float64:
		if f, ok := numericValue(raw); ok {
			converted = f
		}
	case []string:
		if items, ok := raw.([]any); ok {
			out := make([]string, len(items))
			for i, item := range items {
				s, ok := item.(string)
				if !ok {
					return zero, &TypeError{
						Name:     name,
						Expected: "string array",
						Actual:   fmt.Sprintf("array with %T element", item),
					}
				}
				out[i] = s
			}
			converted = out
		}
	case map[string]bool:
		if flags, ok := raw.(map[string]any); ok {
			out := make(map[string]bool, len(flags))
			for key, item := range flags {
				b, ok := item.(bool)
				if !ok {
					return zero, &TypeError{
						Name:     name,
						Expected: "flags map",
						Actual:   fmt.Sprintf("map with %T value", item),
					}
				}
				out[key] = b
			}
			converted = out
		}
	case any:
		converted = raw
	}

	if converted != nil {
		if value, ok := converted.(T); ok {
			return value, nil
		}
	}
	return zero, &TypeError{
		Name:     name,
		Expected: fmt.Sprintf("%T", zero),
		Actual:   fmt.Sprintf("%T", raw),
	}
}
