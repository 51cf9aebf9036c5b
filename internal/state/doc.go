// Package state holds the live inventory for the running paintbox process.
//
// # Overview
//
// A Session is loaded once from an inventory.Store and is the only thing that
// mutates the current snapshot afterwards. Every mutation is written through:
//
//	Set / Adjust / Transform / Clear
//	        │
//	        ├─→ compute next snapshot from a copy
//	        ├─→ store.Save(next)      (or store.Clear)
//	        └─→ swap next in          (only if the write succeeded)
//
// A failed write leaves the live inventory untouched and is returned to the
// caller; it is also kept as LastError for the header.
//
// # Concurrency Model
//
// The UI runs store writes inside Bubble Tea commands, which execute on their
// own goroutines. The Session serializes them with a sync.RWMutex:
//
//   - Set, Adjust, Transform, Clear: write lock, held across the store write
//   - Quantity, Snapshot, LastError, LastUpdated: read lock
//
// Holding the lock across the write is what guarantees at most one in-flight
// mutation; the store write is a single small file or row.
//
// # Copying
//
// Snapshot returns a clone, and Transform clones what fn returns, so callers
// can never alias the live map.
//
// # Usage Example
//
//	session := state.NewSession(store, logger)
//	if err := session.Open(ctx); err != nil {
//		return err
//	}
//	qty, err := session.Set(ctx, "RV-252", 3)
//	snap := session.Snapshot()
package state
