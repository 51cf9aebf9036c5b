package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxPayloadBytes is the largest payload Acquire accepts.
const MaxPayloadBytes = 10 << 20

// Source yields the raw bytes of a candidate payload.
type Source interface {
	// Open returns the payload and its size in bytes, or -1 when the size is
	// not known up front. Returning ErrCancelled means the user backed out.
	Open(ctx context.Context) (io.ReadCloser, int64, error)
	// Name describes the source for logs and previews.
	Name() string
}

// FileSource reads a payload from a path. An empty path counts as a
// cancelled pick.
type FileSource struct {
	Path string
}

// Open implements Source.
func (f FileSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	path := strings.TrimSpace(f.Path)
	if path == "" {
		return nil, 0, ErrCancelled
	}
	file, err := os.Open(expandHome(path))
	if err != nil {
		return nil, 0, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}
	return file, info.Size(), nil
}

// Name implements Source.
func (f FileSource) Name() string {
	return filepath.Base(strings.TrimSpace(f.Path))
}

// ReaderSource adapts an io.Reader, typically stdin.
type ReaderSource struct {
	R     io.Reader
	Label string
}

// Open implements Source.
func (r ReaderSource) Open(_ context.Context) (io.ReadCloser, int64, error) {
	if r.R == nil {
		return nil, 0, ErrCancelled
	}
	return io.NopCloser(r.R), -1, nil
}

// Name implements Source.
func (r ReaderSource) Name() string {
	if r.Label == "" {
		return "stdin"
	}
	return r.Label
}

// Acquire reads the payload behind src. A cancelled source yields (nil, nil).
// Size is enforced before anything is parsed.
func Acquire(ctx context.Context, src Source) ([]byte, error) {
	rc, size, err := src.Open(ctx)
	if errors.Is(err, ErrCancelled) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	if size > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrPayloadTooLarge, src.Name(), size, MaxPayloadBytes)
	}
	data, err := io.ReadAll(io.LimitReader(rc, MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if len(data) > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrPayloadTooLarge, src.Name(), MaxPayloadBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyPayload
	}
	return data, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
