package transfer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/five82/paintbox/internal/inventory"
)

// ShareCodePrefix marks a paintbox share code.
const ShareCodePrefix = "pbx1:"

// EncodeShareCode packs p into a single pasteable line. Zero quantities are
// dropped and the metadata is recomputed for what remains.
func EncodeShareCode(p Payload) (string, error) {
	stocked := inventory.Snapshot{}
	for code, qty := range p.Inventory {
		if qty > 0 {
			stocked[code] = qty
		}
	}
	p.Inventory = stocked
	p.Metadata = ComputeMetadata(stocked)
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode share code: %w", err)
	}
	return ShareCodePrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// ShareCodeSource decodes a share code back into payload JSON. An empty code
// counts as a cancelled pick.
type ShareCodeSource struct {
	Code string
}

// Open implements Source.
func (s ShareCodeSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	code := strings.TrimSpace(s.Code)
	if code == "" {
		return nil, 0, ErrCancelled
	}
	code = strings.TrimPrefix(code, ShareCodePrefix)
	if base64.RawURLEncoding.DecodedLen(len(code)) > MaxPayloadBytes {
		return nil, 0, fmt.Errorf("%w: share code decodes past %d bytes", ErrPayloadTooLarge, MaxPayloadBytes)
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(code, "="))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: share code is not valid base64: %v", ErrMalformedPayload, err)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

// Name implements Source.
func (s ShareCodeSource) Name() string {
	return "share code"
}
