package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	settings "github.com/goliatone/go-settings"
	"github.com/google/uuid"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

// Snapshot is the persisted shape of a store: explicit option values by name.
type Snapshot = map[string]any

// Ref identifies one persisted snapshot for one settings domain. Profile is
// optional and distinguishes named variants of the same domain.
type Ref struct {
	Domain  string
	Profile string
}

// Identifier returns the canonical storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.Domain == "" {
		return "", fmt.Errorf("state: domain is required")
	}
	if r.Profile == "" {
		return fmt.Sprintf("system/%s", r.Domain), nil
	}
	return fmt.Sprintf("profile/%s/%s", r.Profile, r.Domain), nil
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// SnapshotStore loads/saves one snapshot for a single reference.
type SnapshotStore interface {
	Load(ctx context.Context, ref Ref) (snapshot Snapshot, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot Snapshot, meta Meta) (Meta, error)
}

// Resolver orchestrates snapshot loads and saves against a settings store.
type Resolver struct {
	Store SnapshotStore
}

// Seed loads the snapshot for ref and applies it to the store in bulk.
// A missing snapshot is not an error; the store keeps its defaults.
func (r Resolver) Seed(ctx context.Context, ref Ref, store *settings.Store) (Meta, error) {
	if r.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	if store == nil {
		return Meta{}, fmt.Errorf("state: settings store is required")
	}

	snapshot, meta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %q: %w", ref.Domain, err)
	}
	if !ok {
		return Meta{}, nil
	}
	if err := store.Apply(snapshot); err != nil {
		return meta, fmt.Errorf("state: apply %q: %w", ref.Domain, err)
	}
	return meta, nil
}

// Capture persists the store's explicit values for ref. When meta carries an
// ETag it must match the stored one, otherwise ErrETagMismatch is returned.
// Missing SnapshotID, ETag, and UpdatedAt fields are minted on save.
func (r Resolver) Capture(ctx context.Context, ref Ref, store *settings.Store, meta Meta) (Meta, error) {
	if r.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}
	if store == nil {
		return Meta{}, fmt.Errorf("state: settings store is required")
	}

	_, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %q: %w", ref.Domain, err)
	}
	if ok && meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	snapshot := explicitSnapshot(store)
	saveMeta := mergeMeta(loadedMeta, meta)
	if saveMeta.SnapshotID == "" {
		saveMeta.SnapshotID = uuid.NewString()
	}
	saveMeta.ETag = uuid.NewString()
	if saveMeta.UpdatedAt.IsZero() {
		saveMeta.UpdatedAt = time.Now()
	}

	savedMeta, err := r.Store.Save(ctx, ref, snapshot, saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("state: save %q: %w", ref.Domain, err)
	}
	return savedMeta, nil
}

func explicitSnapshot(store *settings.Store) Snapshot {
	raw := store.RawValues()
	explicit := store.ExplicitNames()
	snapshot := make(Snapshot, len(explicit))
	for name := range explicit {
		if value, ok := raw[name]; ok {
			snapshot[name] = value
		}
	}
	return snapshot
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
