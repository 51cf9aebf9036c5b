package transfer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/paintbox/internal/inventory"
	"github.com/five82/paintbox/internal/state"
)

// Reconciler runs imports and exports against a live session.
type Reconciler struct {
	session *state.Session
	log     *zap.Logger
	now     func() time.Time
}

// NewReconciler returns a reconciler bound to session.
func NewReconciler(session *state.Session, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{session: session, log: log, now: time.Now}
}

// Load acquires and validates the payload behind src. A cancelled pick
// returns (nil, nil); the live inventory is never touched.
func (r *Reconciler) Load(ctx context.Context, src Source) (*Candidate, error) {
	data, err := Acquire(ctx, src)
	if err != nil {
		r.log.Warn("import rejected", zap.String("source", src.Name()), zap.Error(err))
		return nil, err
	}
	if data == nil {
		r.log.Info("import cancelled", zap.String("source", src.Name()))
		return nil, nil
	}
	c, err := Validate(data)
	if err != nil {
		r.log.Warn("import rejected", zap.String("source", src.Name()), zap.Error(err))
		return nil, err
	}
	c.Source = src.Name()
	r.log.Info("import candidate loaded",
		zap.String("source", c.Source),
		zap.String("export_id", c.ExportID),
		zap.Int("codes", len(c.Codes)),
	)
	return c, nil
}

// Preview describes what committing c with strategy would do right now.
func (r *Reconciler) Preview(c *Candidate, strategy MergeStrategy) Preview {
	return BuildPreview(r.session.Snapshot(), c, strategy, r.now())
}

// Commit applies c to the live inventory in one store write. On failure the
// error wraps ErrPersistence and the live inventory is unchanged.
func (r *Reconciler) Commit(ctx context.Context, c *Candidate, strategy MergeStrategy) (inventory.Snapshot, error) {
	if c == nil {
		return nil, fmt.Errorf("commit import: no candidate")
	}
	next, err := r.session.Transform(ctx, func(cur inventory.Snapshot) inventory.Snapshot {
		return Apply(cur, c, strategy)
	})
	if err != nil {
		r.log.Error("import apply failed", zap.String("source", c.Source), zap.Error(err))
		return nil, fmt.Errorf("apply import: %w", err)
	}
	r.log.Info("import applied",
		zap.String("source", c.Source),
		zap.String("strategy", string(strategy)),
		zap.Int("codes", len(c.Codes)),
	)
	return next, nil
}

// Export builds a payload from the live inventory.
func (r *Reconciler) Export() Payload {
	return Export(r.session.Snapshot(), r.now())
}

// ExportFile writes the live inventory into dir and returns the file path.
func (r *Reconciler) ExportFile(dir string) (string, error) {
	now := r.now()
	p := Export(r.session.Snapshot(), now)
	path, err := WriteFile(dir, p, now)
	if err != nil {
		r.log.Error("export failed", zap.String("dir", dir), zap.Error(err))
		return "", err
	}
	r.log.Info("inventory exported",
		zap.String("path", path),
		zap.String("export_id", p.ExportID),
		zap.Int("codes", p.Metadata.TotalColors),
	)
	return path, nil
}
