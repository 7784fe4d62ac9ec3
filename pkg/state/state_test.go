package state_test

import (
	"context"
	"errors"
	"testing"

	settings "github.com/goliatone/go-settings"
	"github.com/goliatone/go-settings/pkg/state"
)

func newSettingsStore(t *testing.T) *settings.Store {
	t.Helper()
	registry := settings.NewRegistry()
	registry.Add(settings.Declaration{Name: "port", Kind: settings.KindNumber, Default: 8080})
	registry.Add(settings.Declaration{Name: "host", Kind: settings.KindString, Default: "localhost"})
	registry.Add(settings.Declaration{Name: "verbose", Kind: settings.KindBoolean})
	return settings.NewStore(registry)
}

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		ref     state.Ref
		want    string
		wantErr bool
	}{
		{name: "system scope", ref: state.Ref{Domain: "service"}, want: "system/service"},
		{name: "profile scope", ref: state.Ref{Domain: "service", Profile: "staging"}, want: "profile/staging/service"},
		{name: "missing domain", ref: state.Ref{Profile: "staging"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()
	ref := state.Ref{Domain: "service"}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	snapshot := state.Snapshot{"port": 443}
	meta := state.Meta{SnapshotID: "snap-1", ETag: "etag-1", Extra: map[string]string{"origin": "test"}}
	if _, err := store.Save(ctx, ref, snapshot, meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, loadedMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if loaded["port"] != 443 || loadedMeta.SnapshotID != "snap-1" {
		t.Fatalf("unexpected record: %v %+v", loaded, loadedMeta)
	}

	// Loaded copies are detached.
	loaded["port"] = 1
	loadedMeta.Extra["origin"] = "mutated"
	again, againMeta, _, _ := store.Load(ctx, ref)
	if again["port"] != 443 || againMeta.Extra["origin"] != "test" {
		t.Fatalf("loads must return detached copies")
	}
}

func TestResolverCaptureAndSeed(t *testing.T) {
	ctx := context.Background()
	resolver := state.Resolver{Store: state.NewMemoryStore()}
	ref := state.Ref{Domain: "service", Profile: "staging"}

	source := newSettingsStore(t)
	if err := source.SetValue("port", 443); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := source.SetValue("verbose", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta, err := resolver.Capture(ctx, ref, source, state.Meta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.SnapshotID == "" || meta.ETag == "" || meta.UpdatedAt.IsZero() {
		t.Fatalf("capture must mint snapshot metadata, got %+v", meta)
	}

	fresh := newSettingsStore(t)
	seededMeta, err := resolver.Seed(ctx, ref, fresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seededMeta.SnapshotID != meta.SnapshotID {
		t.Fatalf("expected captured snapshot id, got %+v", seededMeta)
	}

	port, err := fresh.GetValue("port")
	if err != nil || port != 443 {
		t.Fatalf("expected seeded value, got %v (err=%v)", port, err)
	}
	// Only explicit values are captured; defaults stay implicit.
	if set, _ := fresh.IsSet("host"); set {
		t.Fatalf("defaults must not be captured as explicit values")
	}
}

func TestResolverSeedMissingSnapshot(t *testing.T) {
	ctx := context.Background()
	resolver := state.Resolver{Store: state.NewMemoryStore()}

	fresh := newSettingsStore(t)
	meta, err := resolver.Seed(ctx, state.Ref{Domain: "absent"}, fresh)
	if err != nil {
		t.Fatalf("missing snapshot must not be an error, got %v", err)
	}
	if meta.SnapshotID != "" {
		t.Fatalf("expected zero meta for missing snapshot, got %+v", meta)
	}

	port, _ := fresh.GetValue("port")
	if port != 8080 {
		t.Fatalf("store must keep defaults, got %v", port)
	}
}

func TestResolverCaptureETagMismatch(t *testing.T) {
	ctx := context.Background()
	resolver := state.Resolver{Store: state.NewMemoryStore()}
	ref := state.Ref{Domain: "service"}

	source := newSettingsStore(t)
	if err := source.SetValue("port", 443); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := resolver.Capture(ctx, ref, source, state.Meta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A stale ETag must be rejected.
	_, err = resolver.Capture(ctx, ref, source, state.Meta{ETag: "stale"})
	if !errors.Is(err, state.ErrETagMismatch) {
		t.Fatalf("expected ErrETagMismatch, got %v", err)
	}

	// The current ETag passes and rotates.
	second, err := resolver.Capture(ctx, ref, source, state.Meta{ETag: first.ETag})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ETag == first.ETag {
		t.Fatalf("expected etag rotation on save")
	}
	if second.SnapshotID != first.SnapshotID {
		t.Fatalf("snapshot id must be stable across captures, got %q vs %q", second.SnapshotID, first.SnapshotID)
	}
}

func TestResolverRequiresStore(t *testing.T) {
	resolver := state.Resolver{}
	if _, err := resolver.Seed(context.Background(), state.Ref{Domain: "x"}, newSettingsStore(t)); err == nil {
		t.Fatalf("expected error for missing snapshot store")
	}
	if _, err := resolver.Capture(context.Background(), state.Ref{Domain: "x"}, newSettingsStore(t), state.Meta{}); err == nil {
		t.Fatalf("expected error for missing snapshot store")
	}
}
