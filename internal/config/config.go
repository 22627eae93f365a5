package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// MemoryPath selects a transient in-memory database.
const MemoryPath = ":memory:"

const (
	defaultDirName  = ".selpkm"
	defaultDBName   = "selpkm.db"
	defaultInbox    = "Inbox"
	defaultLogLevel = "info"
)

// Log output formats.
const (
	LogFormatPretty = "pretty"
	LogFormatText   = "text"
	LogFormatJSON   = "json"
)

// Config holds all configuration for the application.
type Config struct {
	HomeDir   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string
	Inbox     string
}

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the current directory is loaded first, then one in the
// config directory. Environment variables already set take precedence over
// .env file values.
func Load() (*Config, error) {
	// Missing .env files are fine.
	_ = godotenv.Load()

	home, err := homeDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(home, ".env")); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}

	cfg := &Config{
		HomeDir:   home,
		DBPath:    getEnv("SELPKM_DB_PATH", filepath.Join(home, defaultDBName)),
		LogFormat: strings.ToLower(getEnv("SELPKM_LOG_FORMAT", LogFormatPretty)),
		Inbox:     getEnv("SELPKM_INBOX", defaultInbox),
	}

	level, err := parseLevel(getEnv("SELPKM_LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.LogFormat {
	case LogFormatPretty, LogFormatText, LogFormatJSON:
	default:
		return nil, fmt.Errorf("SELPKM_LOG_FORMAT must be one of pretty, text, json: got %q", cfg.LogFormat)
	}

	if strings.TrimSpace(cfg.Inbox) == "" {
		return nil, fmt.Errorf("SELPKM_INBOX cannot be blank")
	}

	if err := EnsureDBDir(cfg.DBPath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureDBDir creates the directory holding dbPath. In-memory paths are
// left alone.
func EnsureDBDir(dbPath string) error {
	if dbPath == MemoryPath || strings.HasPrefix(dbPath, "file::memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// homeDir resolves SELPKM_HOME, falling back to ~/.selpkm.
func homeDir() (string, error) {
	if dir := os.Getenv("SELPKM_HOME"); dir != "" {
		return dir, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(userHome, defaultDirName), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("SELPKM_LOG_LEVEL must be one of debug, info, warn, error: got %q", s)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
