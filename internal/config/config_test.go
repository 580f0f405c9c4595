package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Database.QueryTimeoutSec)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.MinIO.Enabled())
}

func validConfig() *AppConfig {
	return &AppConfig{
		Port:           "7001",
		BodyLimitBytes: 1024,
		Log:            LogConfig{Level: "info", Format: "json"},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            "5432",
			User:            "user",
			Name:            "corpus",
			SSLMode:         "disable",
			QueryTimeoutSec: 5,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{name: "valid postgres", mutate: func(c *AppConfig) {}},
		{
			name: "valid sqlite without postgres fields",
			mutate: func(c *AppConfig) {
				c.Database = DatabaseConfig{Driver: "sqlite", SQLitePath: "corpus.db", QueryTimeoutSec: 1}
			},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *AppConfig) { c.Database.Driver = "mysql" },
			wantErr: "Driver",
		},
		{
			name:    "postgres requires host",
			mutate:  func(c *AppConfig) { c.Database.Host = "" },
			wantErr: "Host",
		},
		{
			name:    "sqlite requires path",
			mutate:  func(c *AppConfig) { c.Database = DatabaseConfig{Driver: "sqlite", QueryTimeoutSec: 1} },
			wantErr: "SQLitePath",
		},
		{
			name:    "non numeric port",
			mutate:  func(c *AppConfig) { c.Port = "http" },
			wantErr: "Port",
		},
		{
			name:    "archive endpoint requires bucket",
			mutate:  func(c *AppConfig) { c.MinIO = MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"} },
			wantErr: "Bucket",
		},
		{
			name:    "bad log level",
			mutate:  func(c *AppConfig) { c.Log.Level = "loud" },
			wantErr: "Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
