// Package state defines persistence-facing contracts for loading and saving
// settings snapshots, plus a small resolver that seeds stores from persisted
// snapshots and captures explicit values back into storage.
//
// Responsibilities:
//   - SnapshotStore only loads/saves a single snapshot for a single Ref.
//   - Resolver seeds a settings.Store from a snapshot (Seed) and persists the
//     store's explicit values (Capture), minting snapshot identifiers and
//     enforcing optimistic concurrency via Meta.ETag.
//   - The core settings package remains persistence-agnostic; all persistence
//     logic stays behind SnapshotStore implementations supplied by consumers.
//
// Deterministic keys:
//
//	Ref.Identifier() provides a canonical storage key based on domain and an
//	optional profile (`system/<domain>` or `profile/<profile>/<domain>`).
package state
