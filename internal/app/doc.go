// Package app is the composition root for paintbox.
//
// # Overview
//
// Open wires configuration, logging, the color catalog, the inventory store
// and the live session into an Env. The TUI (Run) and every CLI subcommand
// start from the same Env, so they all see one data directory, one store
// backend and one log file.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       │
//	       ├─────> config.LoadDotEnv()   .env into the environment
//	       ├─────> config.Load()         TOML + env overrides
//	       ├─────> logging.New()         zap JSON log in <data_dir>
//	       ├─────> catalog.Load()        built-in or configured table
//	       ├─────> openStore()           FileStore or SQLiteStore
//	       ├─────> state.Session.Open()  load the persisted snapshot
//	       └─────> transfer.NewReconciler()
//
//	Run() = Open() + prefs.Load() + ui.Run()
//
// # Option Precedence
//
// Options fields (set from CLI flags) win over environment variables, which
// win over the config file, which wins over built-in defaults.
//
// # Error Handling
//
// Open fails on an unreadable or invalid config, an unknown storage backend
// or merge strategy, a bad catalog file, and a store that cannot be read.
// A corrupted inventory record is not an error; the store recovers it and
// logs a warning.
//
// # Usage Example
//
//	env, err := app.Open(ctx, app.Options{})
//	if err != nil {
//		return err
//	}
//	defer env.Close()
//	qty, err := env.Session.Set(ctx, "RV-252", 3)
package app
