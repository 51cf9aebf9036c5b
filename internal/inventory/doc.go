// Package inventory persists the color-code → quantity snapshot.
//
// # Record Format
//
// Every store keeps one JSON record under the key "mtn-inventory":
//
//	{"items": {"RV-252": 3}, "version": "1.0.0", "lastUpdated": "2026-01-02T15:04:05Z"}
//
// # Load Policy
//
//   - Missing record: empty snapshot.
//   - Version other than 1.0.0: empty snapshot, record left in place, warning logged.
//   - Unparseable record or negative quantity: record deleted, empty snapshot, warning logged.
//   - Medium failure (permissions, I/O): ErrPersistence.
//
// Recovery is silent on purpose; callers only ever see ErrPersistence.
//
// # Stores
//
//   - FileStore: <data_dir>/inventory.json, written via temp file + rename.
//   - SQLiteStore: <data_dir>/inventory.db, a kv table with one row.
//   - MemoryStore: in-process, with failure injection for tests.
package inventory
