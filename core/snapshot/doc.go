// Package snapshot persists the ordered card collection between sessions.
//
// A snapshot is a JSON array of stored card records in display order. Stores only move
// bytes: they never interpret records, which are rebuilt by the reconcile rehydration
// pass so that schema drift is absorbed in one place.
//
// # Backends
//
//   - FileStore keeps one JSON file per workspace on local disk.
//   - DBStore keeps one row per workspace in a GORM table.
//   - ObjectStore keeps one object per workspace in an S3/MinIO bucket.
//   - MemoryStore keeps snapshots in memory, for tests and ephemeral decks.
//
// Loading a workspace that was never saved returns an empty snapshot, not an error.
package snapshot
