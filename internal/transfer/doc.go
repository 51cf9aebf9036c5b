// Package transfer moves inventory snapshots in and out of paintbox.
//
// # Import Pipeline
//
// An import runs through four stages. The first two can fail; nothing before
// Commit touches the live inventory.
//
//	Source ──Acquire──→ bytes ──Validate──→ Candidate
//	                                            │
//	                          BuildPreview ←────┤  (shown for confirmation)
//	                                            │
//	                          Commit/Apply ←────┘  (one store write)
//
// Acquire enforces MaxPayloadBytes before parsing and rejects blank input
// with ErrEmptyPayload. A Source returning ErrCancelled (an empty path, an
// empty share code) makes Acquire and Reconciler.Load return (nil, nil),
// which callers treat as "nothing happened".
//
// Validate reports JSON syntax errors as ErrMalformedPayload and any shape
// problem as ErrSchemaViolation, stopping at the first one. It keeps the
// inventory keys in document order so previews list codes the way the file
// does.
//
// # Merge Strategies
//
//	Replace       final = candidate
//	Merge         final = current + candidate
//	SkipExisting  final = current if current > 0, else candidate
//
// BuildPreview and Apply share MergeStrategy.Final, so a preview always
// agrees with the snapshot Commit writes.
//
// # Export
//
// Export derives metadata from the snapshot it is given and stamps a fresh
// exportId. WriteFile names files mtn-inventory-YYYY-MM-DD-HH-MM-SS.json.
// EncodeShareCode produces a base64url line that ShareCodeSource feeds back
// through the same import pipeline.
package transfer
