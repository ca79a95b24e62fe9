package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medication-tracker/internal/platform/logger"
)

func TestConfigLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "STORE", "SQLITE_PATH", "TIMEZONE", "BACKUP_DAYS", "BACKUP_PREFIX"} {
		// t.Setenv restaura el valor original al terminar; vacío no es lo mismo que ausente.
		t.Setenv(Prefix+"_"+k, "")
		require.NoError(t, os.Unsetenv(Prefix+"_"+k))
	}

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "medications.db", cfg.SQLitePath)
	assert.Equal(t, "backups/", cfg.BackupPrefix)
	assert.Equal(t, 30, cfg.BackupDays)
	assert.Equal(t, ":8080", cfg.HTTPAddr())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("MEDS_HTTP_PORT", "9091")
	t.Setenv("MEDS_STORE", "Memory")
	t.Setenv("MEDS_TIMEZONE", "UTC")
	t.Setenv("MEDS_LOG_LEVEL", "debug")
	t.Setenv("MEDS_LOG_FORMAT", "json")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.Store)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	opts := cfg.LoggerOptions()
	assert.Equal(t, logger.Debug, opts.Level)
	assert.Equal(t, logger.FormatJSON, opts.Format)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{HTTPPort: 8080, Store: StoreSQLite, SQLitePath: "x.db", Timezone: "Local", BackupDays: 30}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"sqlite ok", func(*Config) {}, true},
		{"memory ok", func(c *Config) { c.Store = StoreMemory; c.SQLitePath = "" }, true},
		{"postgres needs dsn", func(c *Config) { c.Store = StorePostgres }, false},
		{"postgres with dsn", func(c *Config) { c.Store = StorePostgres; c.PostgresDSN = "postgres://x" }, true},
		{"unknown store", func(c *Config) { c.Store = "mongo" }, false},
		{"bad port", func(c *Config) { c.HTTPPort = 0 }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, false},
		{"bad backup days", func(c *Config) { c.BackupDays = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
