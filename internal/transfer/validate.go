package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/five82/paintbox/internal/inventory"
)

// maxImportQuantity keeps merged sums well inside int range.
const maxImportQuantity = math.MaxInt32

// Candidate is a validated import payload.
type Candidate struct {
	Version    string
	ExportedAt string
	ExportID   string
	// Metadata is what the file declares; it is informational only.
	Metadata  Metadata
	Inventory inventory.Snapshot
	// Codes lists the inventory keys in document order.
	Codes  []string
	Source string
}

// Validate parses data and checks the export envelope. The first violation
// found is returned wrapped in ErrMalformedPayload or ErrSchemaViolation.
func Validate(data []byte) (*Candidate, error) {
	if !json.Valid(data) {
		var doc any
		err := json.Unmarshal(data, &doc)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return nil, schemaErr("top level must be an object")
	}

	c := &Candidate{}
	var err error
	if c.Version, err = requiredString(top, "version"); err != nil {
		return nil, err
	}
	if c.ExportedAt, err = requiredString(top, "exportedAt"); err != nil {
		return nil, err
	}
	invRaw, ok := top["inventory"]
	if !ok {
		return nil, schemaErr("missing inventory")
	}
	mdRaw, ok := top["metadata"]
	if !ok {
		return nil, schemaErr("missing metadata")
	}
	if c.Metadata, err = decodeMetadata(mdRaw); err != nil {
		return nil, err
	}
	if c.Inventory, c.Codes, err = decodeInventory(invRaw); err != nil {
		return nil, err
	}
	if raw, ok := top["exportId"]; ok {
		_ = json.Unmarshal(raw, &c.ExportID)
	}
	return c, nil
}

func schemaErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaViolation, fmt.Sprintf(format, args...))
}

func requiredString(top map[string]json.RawMessage, key string) (string, error) {
	raw, ok := top[key]
	if !ok {
		return "", schemaErr("missing %s", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		return "", schemaErr("%s must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", schemaErr("%s is empty", key)
	}
	return s, nil
}

func decodeMetadata(raw json.RawMessage) (Metadata, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Metadata{}, schemaErr("metadata must be an object")
	}
	var md Metadata
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"totalColors", &md.TotalColors},
		{"colorsWithStock", &md.ColorsWithStock},
		{"totalQuantity", &md.TotalQuantity},
	} {
		v, ok := fields[f.key]
		if !ok {
			return Metadata{}, schemaErr("metadata.%s is missing", f.key)
		}
		n, ok := asNumber(v)
		if !ok {
			return Metadata{}, schemaErr("metadata.%s must be a number", f.key)
		}
		fv, _ := n.Float64()
		*f.dst = int(fv)
	}
	return md, nil
}

// decodeInventory walks the inventory object token by token so the key
// order of the document survives.
func decodeInventory(raw json.RawMessage) (inventory.Snapshot, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, schemaErr("inventory must be an object")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, schemaErr("inventory must be an object")
	}

	snap := inventory.Snapshot{}
	var codes []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, schemaErr("inventory: %v", err)
		}
		code, _ := keyTok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, schemaErr("inventory[%q]: %v", code, err)
		}
		num, ok := v.(json.Number)
		if !ok {
			return nil, nil, schemaErr("inventory[%q] must be a number", code)
		}
		qty, err := quantity(num)
		if err != nil {
			return nil, nil, schemaErr("inventory[%q] %v", code, err)
		}
		if _, dup := snap[code]; !dup {
			codes = append(codes, code)
		}
		snap[code] = qty
	}
	return snap, codes, nil
}

func quantity(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return 0, fmt.Errorf("is negative (%d)", i)
		}
		if i > maxImportQuantity {
			return 0, fmt.Errorf("is too large (%d)", i)
		}
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("is not a number (%s)", n)
	}
	switch {
	case f < 0:
		return 0, fmt.Errorf("is negative (%s)", n)
	case f != math.Trunc(f):
		return 0, fmt.Errorf("is not a whole number (%s)", n)
	case f > maxImportQuantity:
		return 0, fmt.Errorf("is too large (%s)", n)
	}
	return int(f), nil
}

func asNumber(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
