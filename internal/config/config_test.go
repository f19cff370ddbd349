package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "HS256", cfg.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "file.db")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file.db", cfg.DatabaseDSN)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, "HS512", cfg.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadFile_EnvWinsOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "server_port: \"7000\"\ndb_driver: sqlite\ndatabase_dsn: from-file.db\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_DSN", "from-env.db")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "from-env.db", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }},
		{"asymmetric algorithm", func(c *Config) { c.Algorithm = "RS256" }},
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateServe_RejectsPlaceholderSecret(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate(), "migrations may run with the placeholder")
	assert.ErrorContains(t, cfg.ValidateServe(), "placeholder")

	cfg.SecretKey = "s3cret"
	assert.NoError(t, cfg.ValidateServe())

	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.ValidateServe())
}
