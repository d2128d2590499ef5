// Package config resolves helpdesk settings from defaults, an optional YAML
// file and HELPDESK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	SeedPath string // empty means the built-in collection
	Format   string // json or text
	LogLevel slog.Level
	Operator string // name shown in the dashboard header
}

// configFile mirrors the YAML schema of a helpdesk config file.
type configFile struct {
	Seed     string `yaml:"seed"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	Operator string `yaml:"operator"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Format:   "json",
		LogLevel: slog.LevelWarn,
	}
}

// Load resolves configuration in priority order: defaults -> file -> env.
// A missing file is only an error when path was given explicitly; when path
// is empty, $HELPDESK_CONFIG is consulted.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = getenv("HELPDESK_CONFIG")
		explicit = path != ""
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			var f configFile
			if err := yaml.Unmarshal(raw, &f); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
			if err := cfg.apply(f.Seed, f.Format, f.LogLevel, f.Operator); err != nil {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	err := cfg.apply(
		getenv("HELPDESK_SEED"),
		getenv("HELPDESK_FORMAT"),
		getenv("HELPDESK_LOG_LEVEL"),
		getenv("HELPDESK_OPERATOR"),
	)
	if err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// Override applies non-empty command-line values on top of cfg.
func (c *Config) Override(seed, format, level, operator string) error {
	return c.apply(seed, format, level, operator)
}

func (c *Config) apply(seed, format, level, operator string) error {
	if seed != "" {
		c.SeedPath = seed
	}
	if format != "" {
		f, err := ParseFormat(format)
		if err != nil {
			return err
		}
		c.Format = f
	}
	if level != "" {
		l, err := ParseLevel(level)
		if err != nil {
			return err
		}
		c.LogLevel = l
	}
	if operator != "" {
		c.Operator = operator
	}
	return nil
}

// ParseFormat accepts json or text, case-insensitively.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "json", "text":
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (want json or text)", s)
	}
}

// ParseLevel accepts debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
