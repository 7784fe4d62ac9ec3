package settings

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"

	"github.com/goliatone/go-settings/layering"
	"github.com/goliatone/go-settings/pkg/activity"
)

// Store holds the current value for every declared option. Values are seeded
// from declaration defaults and validated on write. Freeze is a one-way
// transition after which every mutator fails with ErrFrozen.
//
// The store is a single sequential actor: no internal locking beyond the
// frozen flag, which uses an atomic store so the transition is a visibility
// fence for any reader that observes it.
type Store struct {
	registry *Registry
	cfg      storeConfig

	values   map[string]any
	explicit map[string]struct{}
	rules    []constraintRule

	compilerFiles []string
	compilerOpts  map[string]any
	compilerRefs  []ProjectReference

	frozen atomic.Bool
}

// NewStore constructs a value store backed by registry. The store attaches
// itself so declaration removal clears its slot here too.
func NewStore(registry *Registry, opts ...Option) *Store {
	s := &Store{
		registry: registry,
		cfg:      applyOptions(opts),
		values:   make(map[string]any),
		explicit: make(map[string]struct{}),
	}
	registry.attach(s)
	return s
}

// Registry returns the declaration registry backing the store.
func (s *Store) Registry() *Registry {
	return s.registry
}

// GetValue returns the current value for name, falling back to the
// declaration default when no explicit value was set.
func (s *Store) GetValue(name string) (any, error) {
	decl := s.registry.Get(name)
	if decl == nil {
		return nil, optionErr("get", name, ErrUnknownOption)
	}
	if decl.Category == CategoryCompiler {
		return nil, optionErr("get", name, ErrReservedCategory)
	}
	if value, ok := s.values[name]; ok {
		return value, nil
	}
	return decl.defaultValue(), nil
}

// SetValue validates value against the declaration's kind and stores it,
// marking the slot explicitly set. A failed set leaves the prior value
// untouched.
func (s *Store) SetValue(name string, value any) error {
	if s.Frozen() {
		return optionErr("set", name, ErrFrozen)
	}
	decl := s.registry.Get(name)
	if decl == nil {
		return optionErr("set", name, ErrUnknownOption)
	}
	if decl.Category == CategoryCompiler {
		return optionErr("set", name, ErrReservedCategory)
	}
	if err := decl.Validate(value); err != nil {
		return optionErr("set", name, joinInvalid(err))
	}
	old := s.values[name]
	s.values[name] = value
	s.explicit[name] = struct{}{}
	s.emit(activity.BuildOptionUpdatedEvent(activity.SettingsEventInput{
		Option:   name,
		OldValue: old,
		NewValue: value,
	}))
	return nil
}

// IsSet reports whether a non-default value was written for name.
func (s *Store) IsSet(name string) (bool, error) {
	decl := s.registry.Get(name)
	if decl == nil {
		return false, optionErr("isSet", name, ErrUnknownOption)
	}
	if decl.Category == CategoryCompiler {
		return false, optionErr("isSet", name, ErrReservedCategory)
	}
	_, ok := s.explicit[name]
	return ok, nil
}

// Reset restores every slot to its declaration default and clears the
// explicit flags. Reset is a mutation and fails once frozen.
func (s *Store) Reset() error {
	if s.Frozen() {
		return optionErr("reset", "", ErrFrozen)
	}
	s.values = make(map[string]any)
	s.explicit = make(map[string]struct{})
	s.emit(activity.BuildStoreResetEvent(activity.SettingsEventInput{}))
	return nil
}

// RawValues returns a deep-copied name-to-value snapshot of every ordinary
// option, including structural defaults for container kinds.
func (s *Store) RawValues() map[string]any {
	out := make(map[string]any)
	for _, decl := range s.registry.All() {
		if value, ok := s.values[decl.Name]; ok {
			out[decl.Name] = layering.Clone(value)
			continue
		}
		out[decl.Name] = layering.Clone(decl.defaultValue())
	}
	return out
}

// ExplicitNames returns which slots currently hold an explicitly set value.
func (s *Store) ExplicitNames() map[string]bool {
	out := make(map[string]bool, len(s.explicit))
	for name := range s.explicit {
		out[name] = true
	}
	return out
}

// Apply bulk-sets snapshot through the validated per-name path, visiting
// names in sorted order. Every failing slot is collected; successful slots
// stick regardless.
func (s *Store) Apply(snapshot map[string]any) error {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := s.SetValue(name, snapshot[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Freeze transitions the store from mutable to frozen. Registered constraint
// rules run against the final snapshot first; failures are reported to the
// registry's reporter, they do not abort the freeze. Re-invocation is
// idempotent. No unfreeze exists.
func (s *Store) Freeze() {
	if s.frozen.Load() {
		return
	}
	s.runRules()
	s.frozen.Store(true)
	s.emit(activity.BuildStoreFrozenEvent(activity.SettingsEventInput{}))
}

// Frozen reports whether the store has been frozen.
func (s *Store) Frozen() bool {
	return s.frozen.Load()
}

// dropSlot clears the value slot for a removed declaration.
func (s *Store) dropSlot(name string) {
	old, had := s.values[name]
	delete(s.values, name)
	delete(s.explicit, name)
	if had {
		s.emit(activity.BuildOptionRemovedEvent(activity.SettingsEventInput{
			Option:   name,
			OldValue: old,
		}))
	}
}

func (s *Store) reporter() Reporter {
	if s.registry != nil && s.registry.reporter != nil {
		return s.registry.reporter
	}
	return noopReporter{}
}

func (s *Store) emit(event activity.Event) {
	if !s.cfg.activityHooks.Enabled() {
		return
	}
	_ = s.cfg.activityHooks.Notify(context.Background(), event)
}

func joinInvalid(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidValue) {
		return err
	}
	return errors.Join(ErrInvalidValue, err)
}
