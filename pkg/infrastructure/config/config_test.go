package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "pav bhaji", cfg.Catalog.DefaultDish)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.NoError(t, cfg.Validate(false))
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("VENDORSUPPLY_LOG_LEVEL", "debug")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("VENDORSUPPLY_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	path := writeConfig(t, `
server:
  addr: ":9090"
log:
  env: production
  level: warn
catalog:
  default_dish: dosa
session:
  ttl: 2h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "production", cfg.Log.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dosa", cfg.Catalog.DefaultDish)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.NoError(t, cfg.Validate(true))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_SessionTTLFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	t.Setenv("SESSION_TTL", "90m")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)

	t.Setenv("SESSION_TTL", "a day")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		serving bool
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"empty default dish", func(c *Config) { c.Catalog.DefaultDish = " " }, false},
		{"supplier files not paired", func(c *Config) { c.Suppliers.File = "suppliers.csv" }, false},
		{"missing secret", func(c *Config) {}, true},
		{"empty addr", func(c *Config) { c.Session.Secret = "x"; c.Server.Addr = "" }, true},
		{"zero ttl", func(c *Config) { c.Session.Secret = "x"; c.Session.TTL = 0 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate(tc.serving))
		})
	}
}
