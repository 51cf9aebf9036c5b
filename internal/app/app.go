package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/config"
	"github.com/five82/paintbox/internal/inventory"
	"github.com/five82/paintbox/internal/logging"
	"github.com/five82/paintbox/internal/prefs"
	"github.com/five82/paintbox/internal/state"
	"github.com/five82/paintbox/internal/transfer"
	"github.com/five82/paintbox/internal/ui"
)

// Options configure a paintbox process.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/paintbox/prefs.toml
	EnvFile    string // empty uses ./.env
	DataDir    string // overrides config and environment when set
	Storage    string // overrides config and environment when set
	LogLevel   string // overrides config and environment when set
}

// Env is the set of services a command runs against.
type Env struct {
	Config     config.Config
	Catalog    *catalog.Catalog
	Store      inventory.Store
	Session    *state.Session
	Reconciler *transfer.Reconciler
	Strategy   transfer.MergeStrategy
	Log        *zap.Logger

	closers []func() error
}

// Open loads configuration, opens the inventory store and the live session.
// Callers must Close the returned Env.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	strategy, err := transfer.ParseStrategy(cfg.MergeStrategy)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	env := &Env{Config: cfg, Log: logger, Strategy: strategy}
	env.closers = append(env.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	env.Catalog = cat

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.Store = store
	if c, ok := store.(interface{ Close() error }); ok {
		env.closers = append([]func() error{c.Close}, env.closers...)
	}

	env.Session = state.NewSession(store, logger)
	if err := env.Session.Open(ctx); err != nil {
		_ = env.Close()
		return nil, err
	}
	env.Reconciler = transfer.NewReconciler(env.Session, logger)

	logger.Debug("paintbox started",
		zap.String("data_dir", cfg.DataDir),
		zap.String("storage", cfg.Storage),
		zap.Int("catalog_colors", cat.Len()),
	)
	return env, nil
}

// LoadConfig resolves the configuration for opts: .env, then the TOML file
// and PAINTBOX_* variables, then the explicit overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.LoadWith(opts.ConfigPath, config.Overrides{
		DataDir:  opts.DataDir,
		Storage:  opts.Storage,
		LogLevel: opts.LogLevel,
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Close releases the store and flushes the log.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (inventory.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return inventory.OpenSQLiteStore(ctx, cfg.DataDir, log)
	case config.StorageFile, "":
		return inventory.NewFileStore(cfg.DataDir, log), nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

// Run boots the paintbox TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	strategy := env.Strategy
	if s, err := transfer.ParseStrategy(userPrefs.Strategy); err == nil {
		strategy = s
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Catalog:    env.Catalog,
		Session:    env.Session,
		Reconciler: env.Reconciler,
		Log:        env.Log,
		ExportDir:  env.Config.ExportDir,
		Strategy:   strategy,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
	})
}
