package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_PATH", "LEDGER_DRIVER", "SEED_MENU", "SESSION_IDLE_TTL", "SHEET_NAME",
		"GOOGLE_CREDENTIALS_FILE", "GOOGLE_CREDENTIALS_JSON", "SHEET_SHARE_EMAIL",
		"SYNC_TIMEOUT", "SYNC_MAX_ATTEMPTS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.LedgerDriver)
	assert.True(t, cfg.SeedMenu)
	assert.Equal(t, 8*time.Hour, cfg.SessionIdleTTL)
	assert.Equal(t, "POS_Transaction_Log", cfg.Sync.SheetName)
	assert.Equal(t, 10*time.Second, cfg.Sync.Timeout)
	assert.Equal(t, 1, cfg.Sync.MaxAttempts)
	assert.Equal(t, "text", cfg.Log.Format)

	creds, err := cfg.Sync.Credentials()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LEDGER_DRIVER", "memory")
	t.Setenv("SEED_MENU", "false")
	t.Setenv("SESSION_IDLE_TTL", "30m")
	t.Setenv("SYNC_TIMEOUT", "2500ms")
	t.Setenv("SYNC_MAX_ATTEMPTS", "3")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, DriverMemory, cfg.LedgerDriver)
	assert.False(t, cfg.SeedMenu)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.Sync.Timeout)
	assert.Equal(t, 3, cfg.Sync.MaxAttempts)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "http"},
		{"PORT", "70000"},
		{"LEDGER_DRIVER", "postgres"},
		{"SEED_MENU", "maybe"},
		{"SESSION_IDLE_TTL", "forever"},
		{"SESSION_IDLE_TTL", "0s"},
		{"SYNC_TIMEOUT", "soon"},
		{"SYNC_TIMEOUT", "-1s"},
		{"SYNC_MAX_ATTEMPTS", "0"},
		{"LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSyncConfig_Credentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))

	fromFile := SyncConfig{CredentialsFile: path}
	data, err := fromFile.Credentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(data))

	inline := SyncConfig{CredentialsFile: path, CredentialsJSON: `{"inline":true}`}
	data, err = inline.Credentials()
	require.NoError(t, err)
	assert.Equal(t, `{"inline":true}`, string(data))

	missing := SyncConfig{CredentialsFile: filepath.Join(t.TempDir(), "nope.json")}
	_, err = missing.Credentials()
	assert.Error(t, err)
}
