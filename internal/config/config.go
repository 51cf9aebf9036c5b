package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends for the inventory record.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Environment overrides, applied after the config file.
const (
	EnvDataDir  = "PAINTBOX_DATA_DIR"
	EnvStorage  = "PAINTBOX_STORAGE"
	EnvLogLevel = "PAINTBOX_LOG_LEVEL"
)

// Config holds the paintbox settings.
type Config struct {
	DataDir       string `toml:"data_dir" validate:"required"`
	ExportDir     string `toml:"export_dir" validate:"required"`
	Storage       string `toml:"storage" validate:"oneof=file sqlite"`
	Catalog       string `toml:"catalog"`
	LogLevel      string `toml:"log_level" validate:"oneof=debug info warn error"`
	MergeStrategy string `toml:"merge_strategy" validate:"required"`
}

var validate = newValidator()

// newValidator reports fields by their TOML key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the resolved settings. The merge strategy is only checked
// for presence here; its names belong to the transfer package.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s %q: want one of %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "required":
			msgs = append(msgs, fe.Field()+" must not be empty")
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

const (
	defaultConfigPath    = "~/.config/paintbox/config.toml"
	defaultDataDir       = "~/.local/share/paintbox"
	defaultLogLevel      = "info"
	defaultMergeStrategy = "replace"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in settings with paths expanded.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		DataDir:       dataDir,
		ExportDir:     filepath.Join(dataDir, "exports"),
		Storage:       StorageFile,
		LogLevel:      defaultLogLevel,
		MergeStrategy: defaultMergeStrategy,
	}
}

// LoadDotEnv reads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Overrides are values that win over both the file and the environment,
// typically command-line flags. Empty fields are ignored.
type Overrides struct {
	DataDir  string
	Storage  string
	LogLevel string
}

// Load parses the config at path (the default location when empty), falling
// back to defaults when the file is missing, then applies environment
// overrides.
func Load(path string) (Config, error) {
	return LoadWith(path, Overrides{})
}

// LoadWith is Load with ov applied after the environment. Override values go
// through the same expansion and defaulting as file values, so a data_dir
// override also moves the default export directory.
func LoadWith(path string, ov Overrides) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		DataDir       string `toml:"data_dir"`
		ExportDir     string `toml:"export_dir"`
		Storage       string `toml:"storage"`
		Catalog       string `toml:"catalog"`
		LogLevel      string `toml:"log_level"`
		MergeStrategy string `toml:"merge_strategy"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		raw.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorage)); v != "" {
		raw.Storage = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		raw.LogLevel = v
	}
	if v := strings.TrimSpace(ov.DataDir); v != "" {
		raw.DataDir = v
	}
	if v := strings.TrimSpace(ov.Storage); v != "" {
		raw.Storage = v
	}
	if v := strings.TrimSpace(ov.LogLevel); v != "" {
		raw.LogLevel = v
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
		cfg.ExportDir = filepath.Join(cfg.DataDir, "exports")
	}
	if v := strings.TrimSpace(raw.ExportDir); v != "" {
		cfg.ExportDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Catalog); v != "" {
		cfg.Catalog = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.MergeStrategy)); v != "" {
		cfg.MergeStrategy = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Storage)); v != "" {
		cfg.Storage = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LogPath returns the paintbox log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/paintbox.log")
	}
	return filepath.Join(c.DataDir, "paintbox.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
