package settings

import (
	"github.com/goliatone/go-settings/internal/hydrate"
)

// Hydrate decodes the store's raw values, defaults included, into a typed
// configuration struct via a JSON round-trip.
func Hydrate[T any](store *Store) (T, error) {
	var zero T
	if store == nil {
		return zero, optionErr("hydrate", "", ErrUnknownOption)
	}
	decoder := hydrate.NewDecoder[T]()
	return decoder.Decode(hydrateContext(store), store.RawValues())
}

// HydrateStrict behaves like Hydrate but rejects raw values that have no
// matching field on T.
func HydrateStrict[T any](store *Store) (T, error) {
	var zero T
	if store == nil {
		return zero, optionErr("hydrate", "", ErrUnknownOption)
	}
	decoder := hydrate.NewDecoder(hydrate.WithDisallowUnknownFields[T]())
	return decoder.Decode(hydrateContext(store), store.RawValues())
}

// HydrateSnapshot decodes an arbitrary snapshot into a typed struct. Useful
// for persisted snapshots that have not been applied to a store yet.
func HydrateSnapshot[T any](domain string, snapshot map[string]any) (T, error) {
	decoder := hydrate.NewDecoder[T]()
	return decoder.Decode(hydrate.Context{Domain: domain, Source: "snapshot"}, snapshot)
}

func hydrateContext(store *Store) hydrate.Context {
	source := "store"
	if store.Frozen() {
		source = "frozen-store"
	}
	return hydrate.Context{Domain: "settings", Source: source}
}
