package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDataDir, EnvStorage, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.ExportDir != filepath.Join(wantDataDir, "exports") {
		t.Fatalf("ExportDir = %q, want %q", cfg.ExportDir, filepath.Join(wantDataDir, "exports"))
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageFile)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.MergeStrategy != defaultMergeStrategy {
		t.Fatalf("MergeStrategy = %q, want %q", cfg.MergeStrategy, defaultMergeStrategy)
	}
	if cfg.Catalog != "" {
		t.Fatalf("Catalog = %q, want empty (built-in)", cfg.Catalog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
data_dir = "  ~/paint  "
export_dir = "~/Downloads"
storage = " SQLite "
catalog = "~/colors.yaml"
log_level = "DEBUG"
merge_strategy = "merge"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, "paint") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "paint"))
	}
	if cfg.ExportDir != filepath.Join(home, "Downloads") {
		t.Fatalf("ExportDir = %q, want %q", cfg.ExportDir, filepath.Join(home, "Downloads"))
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.Catalog != filepath.Join(home, "colors.yaml") {
		t.Fatalf("Catalog = %q, want %q", cfg.Catalog, filepath.Join(home, "colors.yaml"))
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.MergeStrategy != "merge" {
		t.Fatalf("MergeStrategy = %q, want %q", cfg.MergeStrategy, "merge")
	}
}

func TestLoad_DataDirMovesDefaultExportDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	dataDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("data_dir = \""+dataDir+"\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ExportDir != filepath.Join(dataDir, "exports") {
		t.Fatalf("ExportDir = %q, want %q", cfg.ExportDir, filepath.Join(dataDir, "exports"))
	}
	if cfg.LogPath() != filepath.Join(dataDir, "paintbox.log") {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath(), filepath.Join(dataDir, "paintbox.log"))
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()
	t.Setenv(EnvDataDir, dataDir)
	t.Setenv(EnvStorage, "sqlite")
	t.Setenv(EnvLogLevel, "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("storage = \"file\"\nlog_level = \"debug\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != dataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, dataDir)
	}
	if cfg.Storage != StorageSQLite {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, StorageSQLite)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoad_InvalidStorageFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`storage = "postgres"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want invalid storage")
	}
	if !strings.Contains(err.Error(), "invalid storage") {
		t.Fatalf("Load error = %q, want it to mention invalid storage", err.Error())
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PAINTBOX_STORAGE=sqlite\nPAINTBOX_LOG_LEVEL=error\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvStorage, "")
	t.Setenv(EnvLogLevel, "debug")
	// godotenv only fills unset variables.
	os.Unsetenv(EnvStorage)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvStorage); got != "sqlite" {
		t.Fatalf("%s = %q, want %q", EnvStorage, got, "sqlite")
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Fatalf("%s = %q, want %q (already set)", EnvLogLevel, got, "debug")
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) returned error: %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenDataDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/paintbox.log")) {
		t.Fatalf("LogPath = %q, want it to end with /paintbox.log", got)
	}
}

func TestLoad_InvalidLogLevelNamesKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "loud"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want invalid log_level")
	}
	want := `invalid log_level "loud": want one of debug, info, warn, error`
	if err.Error() != want {
		t.Fatalf("Load error = %q, want %q", err.Error(), want)
	}
}

func TestConfig_ValidateRequiresDirs(t *testing.T) {
	cfg := Default()
	cfg.ExportDir = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "export_dir must not be empty") {
		t.Fatalf("Validate() = %v, want export_dir error", err)
	}
}

func TestLoadWith_OverridesBeatEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDataDir, filepath.Join(home, "from-env"))
	t.Setenv(EnvStorage, "file")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := LoadWith(filepath.Join(home, "missing.toml"), Overrides{
		DataDir:  "~/from-flag",
		Storage:  " SQLite ",
		LogLevel: "DEBUG",
	})
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if want := filepath.Join(home, "from-flag"); cfg.DataDir != want {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(home, "from-flag", "exports"); cfg.ExportDir != want {
		t.Fatalf("ExportDir = %q, want %q", cfg.ExportDir, want)
	}
	if cfg.Storage != "sqlite" {
		t.Fatalf("Storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadWith_InvalidOverrideNamesKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWith("", Overrides{Storage: "postgres"})
	if err == nil || !strings.Contains(err.Error(), "invalid storage") {
		t.Fatalf("LoadWith error = %v, want invalid storage", err)
	}
}
