// Package config loads service configuration from defaults, an optional YAML
// file, a .env file and the process environment, in that order.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
)

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Suppliers SuppliersConfig `yaml:"suppliers"`
	Session   SessionConfig   `yaml:"session"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// CatalogConfig points at an optional recipes CSV; the built-in recipes are used otherwise
type CatalogConfig struct {
	DefaultDish string `yaml:"default_dish"`
	RecipesFile string `yaml:"recipes_file"`
}

// SuppliersConfig points at optional supplier and listing CSVs; the demo market is used otherwise
type SuppliersConfig struct {
	File         string `yaml:"file"`
	ListingsFile string `yaml:"listings_file"`
}

type SessionConfig struct {
	Secret string        `yaml:"-"`
	TTL    time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when nothing else is provided
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Log: LogConfig{
			Env:   "development",
			Level: "info",
		},
		Catalog: CatalogConfig{
			DefaultDish: "pav bhaji",
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
	}
}

// Load builds a Config. path may be empty, in which case no YAML file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if os.Getenv("APP_ENV") != "production" {
		// A missing .env is normal outside local development
		_ = godotenv.Load()
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "VENDORSUPPLY_ADDR")
	setString(&c.Log.Env, "VENDORSUPPLY_LOG_ENV")
	setString(&c.Log.Level, "VENDORSUPPLY_LOG_LEVEL")
	setString(&c.Catalog.DefaultDish, "VENDORSUPPLY_DEFAULT_DISH")
	setString(&c.Catalog.RecipesFile, "VENDORSUPPLY_RECIPES_FILE")
	setString(&c.Suppliers.File, "VENDORSUPPLY_SUPPLIERS_FILE")
	setString(&c.Suppliers.ListingsFile, "VENDORSUPPLY_LISTINGS_FILE")
	setString(&c.Session.Secret, "SESSION_SECRET")

	if origins := os.Getenv("VENDORSUPPLY_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return errors.Wrapf(err, "parse SESSION_TTL %q", ttl)
		}
		c.Session.TTL = d
	}
	return nil
}

// Validate checks the fields every mode needs. serving adds the HTTP requirements.
func (c Config) Validate(serving bool) error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if strings.TrimSpace(c.Catalog.DefaultDish) == "" {
		return errors.New("catalog.default_dish cannot be empty")
	}
	if (c.Suppliers.File == "") != (c.Suppliers.ListingsFile == "") {
		return errors.New("suppliers.file and suppliers.listings_file must be set together")
	}
	if !serving {
		return nil
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr cannot be empty")
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET must be set to serve HTTP")
	}
	if c.Session.TTL <= 0 {
		return errors.Errorf("session.ttl must be positive, got %s", c.Session.TTL)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
