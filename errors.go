package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by registry and store operations. Callers match
// them with errors.Is.
var (
	// ErrDuplicateDeclaration indicates an Add for a name that is already
	// declared. It is reported to the Reporter, never returned from Add.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")

	// ErrUnknownOption indicates a read, write, or introspection of a name
	// that was never declared.
	ErrUnknownOption = errors.New("unknown option")

	// ErrReservedCategory indicates an attempt to reach a compiler-reserved
	// option through the generic per-name path.
	ErrReservedCategory = errors.New("reserved compiler option")

	// ErrFrozen indicates a mutation attempted after Freeze.
	ErrFrozen = errors.New("store is frozen")

	// ErrInvalidValue indicates a value that fails the declaration's
	// kind-specific validation.
	ErrInvalidValue = errors.New("invalid value")
)

// OptionError wraps a sentinel with the operation and option name that
// produced it.
type OptionError struct {
	Op   string
	Name string
	Err  error
}

func (e *OptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Name == "" {
		return fmt.Sprintf("settings: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("settings: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *OptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func optionErr(op, name string, err error) error {
	return &OptionError{Op: op, Name: name, Err: err}
}

// TypeError is returned when a stored value cannot be converted to the type
// requested by a bound accessor.
type TypeError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("settings: type error for %q: expected %s, got %s", e.Name, e.Expected, e.Actual)
}

// Is reports TypeError as a kind of ErrInvalidValue.
func (e *TypeError) Is(target error) bool {
	return target == ErrInvalidValue
}
