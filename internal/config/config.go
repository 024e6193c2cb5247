// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port         int
	DBPath       string
	LedgerDriver string
	SeedMenu     bool

	// SessionIdleTTL is how long a cart session may go unused before it
	// is evicted.
	SessionIdleTTL time.Duration

	Sync SyncConfig
	Log  LogConfig
}

type SyncConfig struct {
	SheetName string

	// CredentialsFile and CredentialsJSON hold a Google service account
	// key. CredentialsJSON wins when both are set. With neither, the
	// server runs in local-only mode.
	CredentialsFile string
	CredentialsJSON string

	ShareWith   string
	Timeout     time.Duration
	MaxAttempts int
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// Load reads .env if present, then the environment. Malformed values are
// errors; missing ones fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	driver := strings.ToLower(getEnv("LEDGER_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverMemory {
		return nil, fmt.Errorf("invalid LEDGER_DRIVER %q: want %s or %s", driver, DriverSQLite, DriverMemory)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_MENU", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_MENU: %w", err)
	}

	idleTTL, err := time.ParseDuration(getEnv("SESSION_IDLE_TTL", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TTL: %w", err)
	}
	if idleTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TTL %s: must be positive", idleTTL)
	}

	timeout, err := time.ParseDuration(getEnv("SYNC_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid SYNC_TIMEOUT %s: must be positive", timeout)
	}

	attempts, err := strconv.Atoi(getEnv("SYNC_MAX_ATTEMPTS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_MAX_ATTEMPTS: %w", err)
	}
	if attempts < 1 {
		return nil, fmt.Errorf("invalid SYNC_MAX_ATTEMPTS %d: must be at least 1", attempts)
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", format)
	}

	return &Config{
		Port:         port,
		DBPath:       getEnv("DB_PATH", "./data/kasir.db"),
		LedgerDriver: driver,
		SeedMenu:     seed,

		SessionIdleTTL: idleTTL,

		Sync: SyncConfig{
			SheetName:       getEnv("SHEET_NAME", "POS_Transaction_Log"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			ShareWith:       getEnv("SHEET_SHARE_EMAIL", ""),
			Timeout:         timeout,
			MaxAttempts:     attempts,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: format,
		},
	}, nil
}

// Credentials returns the service account key, or nil when none is
// configured.
func (c SyncConfig) Credentials() ([]byte, error) {
	if c.CredentialsJSON != "" {
		return []byte(c.CredentialsJSON), nil
	}
	if c.CredentialsFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
