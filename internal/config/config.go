package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds service configuration. Values load in deterministic layers:
// defaults -> optional YAML file -> env overrides (later layers win).
type Config struct {
	Addr string `yaml:"addr"`

	DB struct {
		// Driver is "sqlite3" or "postgres".
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"db"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	CORS struct {
		AllowedOrigins string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// CORSOrigins splits the configured origin list.
func (c Config) CORSOrigins() []string {
	parts := strings.Split(c.CORS.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Default() Config {
	var c Config
	c.Addr = ":8080"
	c.DB.Driver = "sqlite3"
	c.DB.DSN = "file:exchange.db?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=ON"
	c.Log.Level = "info"
	c.CORS.AllowedOrigins = "*"
	return c
}

// Load reads configuration from path (empty path skips the file layer) and
// applies env overrides. A missing file at the default path is not an error.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else {
			dec := yaml.NewDecoder(strings.NewReader(string(b)))
			dec.KnownFields(false)
			if err := dec.Decode(&c); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&c)

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv("EXCHANGE_ADDR")); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("EXCHANGE_DB_DRIVER")); v != "" {
		c.DB.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("EXCHANGE_DB_DSN")); v != "" {
		c.DB.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("EXCHANGE_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		c.CORS.AllowedOrigins = v
	}
}

func validate(c Config) error {
	switch c.DB.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr required")
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("config: db dsn required")
	}
	return nil
}
