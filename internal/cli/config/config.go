// Package config loads linter settings from .aabhalint.yml and the
// environment. Everything has a default: a project with no config file
// lints with the standard rule set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/aabha-lang/aabhalint/internal/lint"
)

// Config represents the aabhalint configuration
type Config struct {
	// Include lists the paths linted when the command line names none.
	Include []string `mapstructure:"include"`
	// Exclude holds glob patterns matched against discovered file paths.
	Exclude []string `mapstructure:"exclude"`

	Rules   map[string]RuleConfig `mapstructure:"rules"`
	Output  OutputConfig          `mapstructure:"output"`
	Lint    LintConfig            `mapstructure:"lint"`
	Cache   CacheConfig           `mapstructure:"cache"`
	History HistoryConfig         `mapstructure:"history"`
	Watch   WatchConfig           `mapstructure:"watch"`
}

// RuleConfig configures a single rule
type RuleConfig struct {
	Enabled  *bool                  `mapstructure:"enabled"`
	Severity string                 `mapstructure:"severity"`
	Options  map[string]interface{} `mapstructure:"options"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LintConfig controls the lint pass itself
type LintConfig struct {
	Workers int `mapstructure:"workers"`
}

// CacheConfig controls the result cache
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"`
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
	Prefix    string        `mapstructure:"prefix"`
}

// HistoryConfig controls run history persistence
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	Debounce      time.Duration `mapstructure:"debounce"`
	DashboardPort int           `mapstructure:"dashboard_port"`
}

// Load loads the configuration from .aabhalint.yml in the current
// directory, or defaults when no config file exists. An explicit path
// overrides the search and must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("include", []string{"."})
	v.SetDefault("output.format", "text")
	v.SetDefault("output.no_color", false)
	v.SetDefault("lint.workers", 0)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.prefix", "aabhalint:")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "")
	v.SetDefault("watch.debounce", 100*time.Millisecond)
	v.SetDefault("watch.dashboard_port", 4477)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".aabhalint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("AABHALINT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Excluded reports whether a discovered file matches any exclude glob.
// Patterns are tried against the slash-normalized path and the base name,
// so both "fixtures/*.aabha" and "*_generated.aabha" work.
func (c *Config) Excluded(file string) bool {
	normalized := filepath.ToSlash(file)
	base := filepath.Base(file)
	for _, pattern := range c.Exclude {
		if matched, _ := filepath.Match(pattern, normalized); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// RuleOverrides translates the rule section into the engine's override
// table.
func (c *Config) RuleOverrides() map[string]lint.RuleOverride {
	overrides := make(map[string]lint.RuleOverride, len(c.Rules))
	for id, rc := range c.Rules {
		override := lint.RuleOverride{
			Enabled:  rc.Enabled,
			Severity: lint.Severity(rc.Severity),
		}
		if len(rc.Options) > 0 {
			override.Options = lint.Options(rc.Options)
		}
		overrides[id] = override
	}
	return overrides
}

// FindProjectRoot walks up from the working directory looking for a
// .aabhalint.yml, so the linter can be invoked from a subdirectory.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{".aabhalint.yml", ".aabhalint.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("no .aabhalint.yml found")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case "", "text", "json", "json-compact":
	default:
		return fmt.Errorf("output.format must be text, json, or json-compact, got: %s", cfg.Output.Format)
	}

	for id, rc := range cfg.Rules {
		if rc.Severity != "" && !lint.ValidSeverity(lint.Severity(rc.Severity)) {
			return fmt.Errorf("rules.%s.severity must be problem or suggestion, got: %s", id, rc.Severity)
		}
	}

	switch cfg.Cache.Backend {
	case "", "memory", "redis", "off", "none":
	default:
		return fmt.Errorf("cache.backend must be memory, redis, or off, got: %s", cfg.Cache.Backend)
	}

	switch cfg.History.Driver {
	case "", "sqlite", "sqlite3", "postgres":
	default:
		return fmt.Errorf("history.driver must be sqlite or postgres, got: %s", cfg.History.Driver)
	}

	return nil
}
