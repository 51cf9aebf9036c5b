// Package config loads paintbox settings.
//
// # Overview
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults
//  2. ~/.config/paintbox/config.toml (or an explicit path)
//  3. PAINTBOX_DATA_DIR, PAINTBOX_STORAGE and PAINTBOX_LOG_LEVEL
//
// LoadDotEnv can seed the environment layer from a .env file first; it never
// overrides variables that are already set.
//
// A missing config file is not an error. The merged result is checked by
// Config.Validate (struct tags, go-playground/validator); an unknown storage
// backend or log level fails with a message naming the TOML key.
//
// # Default Values
//
//   - Config file: ~/.config/paintbox/config.toml
//   - Data directory: ~/.local/share/paintbox
//   - Export directory: <data_dir>/exports
//   - Storage: file (<data_dir>/inventory.json); sqlite uses <data_dir>/inventory.db
//   - Catalog: built-in table
//   - Log file: <data_dir>/paintbox.log, level info
//   - Merge strategy: replace
//
// # TOML Format
//
//	data_dir = "~/.local/share/paintbox"
//	export_dir = "~/Downloads"
//	storage = "sqlite"
//	catalog = "~/paints/custom.yaml"
//	log_level = "debug"
//	merge_strategy = "merge"
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// The merge strategy is stored as given; the transfer package parses it.
//
// # Usage Example
//
//	_ = config.LoadDotEnv("")
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	logPath := cfg.LogPath()
package config
