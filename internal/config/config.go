// Package config loads xfn settings from defaults, an optional xfn.yaml,
// XFN_* environment variables and explicitly set command-line flags, in
// increasing order of precedence.
//
// Only the CLI and harness read configuration. The value engine is pure and
// takes no settings.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultFormat      = "text"
	DefaultLogLevel    = "info"
	DefaultSuitesDir   = "internal/harness/testdata/suites"
	DefaultParallelism = 4
)

// EnvPrefix prefixes every environment override, e.g. XFN_SUITES_DIR.
const EnvPrefix = "XFN_"

var (
	validFormats   = []string{"text", "json"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
	configNames    = []string{"xfn.yaml", "xfn.yml"}
)

// Config holds the resolved settings.
type Config struct {
	Format      string `koanf:"format"`
	Verbose     bool   `koanf:"verbose"`
	LogLevel    string `koanf:"log_level"`
	Database    string `koanf:"database"`    // SQLite path; empty disables run persistence
	SuitesDir   string `koanf:"suites_dir"`  // conformance suite directory
	GoldenDir   string `koanf:"golden_dir"`  // empty means <suites_dir>/golden
	Parallelism int    `koanf:"parallelism"` // suites evaluated concurrently

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// flagKeys maps flag names onto config keys where they differ.
var flagKeys = map[string]string{
	"db": "database",
}

// Load resolves the configuration. cfgFile names an explicit config file;
// when empty, xfn.yaml or xfn.yml in the working directory is used if
// present. Only flags the user actually set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"format":      DefaultFormat,
		"verbose":     false,
		"log_level":   DefaultLogLevel,
		"database":    "",
		"suites_dir":  DefaultSuitesDir,
		"golden_dir":  "",
		"parallelism": DefaultParallelism,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// XFN_SUITES_DIR -> suites_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path
	if cfg.Verbose && k.String("log_level") == DefaultLogLevel {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the explicit path (which must exist) or the first
// default config name present in the working directory.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, validFormats)
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %v", c.LogLevel, validLogLevels)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.SuitesDir == "" {
		return fmt.Errorf("suites_dir is required")
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
