package transfer

import (
	"errors"

	"github.com/five82/paintbox/internal/inventory"
)

var (
	// ErrCancelled is returned by a Source when the user backed out of
	// choosing a payload. Load turns it into a (nil, nil) result; it never
	// reaches callers of Load as an error.
	ErrCancelled = errors.New("import cancelled")

	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrEmptyPayload     = errors.New("payload is empty")
	ErrMalformedPayload = errors.New("payload is not valid JSON")
	ErrSchemaViolation  = errors.New("payload is not an inventory export")

	// ErrPersistence is the store failure surfaced by Commit.
	ErrPersistence = inventory.ErrPersistence
)
