package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	DBPath     string        `yaml:"db_path"`
	SigningKey string        `yaml:"signing_key"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
	LogLevel   string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Host:       "http://localhost",
		Port:       8080,
		DBPath:     "store.db",
		SigningKey: "calculator",
		TokenTTL:   30 * 24 * time.Hour,
		BcryptCost: 14,
		LogLevel:   "info",
	}
}

// Load reads a YAML file over the defaults. A missing path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SigningKey == "" {
		return errors.New("empty signing key")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl %s", c.TokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost %d", c.BcryptCost)
	}
	return nil
}

// Override replaces the non-zero arguments in c and validates the result.
func (c *Config) Override(host string, port int, dbPath string) error {
	if host != "" {
		c.Host = host
	}
	if port != 0 {
		c.Port = port
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	return c.Validate()
}

func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
