// Package config loads vibeui settings from defaults, a YAML file and
// VIBEUI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/opencode-ai/vibeui/internal/logging"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VIBEUI"

// Config is the full vibeui configuration.
type Config struct {
	Profile        string        `mapstructure:"profile"`
	ThemesDir      string        `mapstructure:"themes_dir"`
	ProjectDir     string        `mapstructure:"project_dir"`
	IncludeBuiltin bool          `mapstructure:"include_builtin"`
	Daemon         DaemonConfig  `mapstructure:"daemon"`
	History        HistoryConfig `mapstructure:"history"`
	Logging        LoggingConfig `mapstructure:"logging"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DaemonConfig configures the gRPC daemon.
type DaemonConfig struct {
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds daemon request rates. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// HistoryConfig controls the lookup history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig mirrors logging.Config in file form.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Profile:        string(theme.ProfileDaisy),
		IncludeBuiltin: true,
		Daemon: DaemonConfig{
			Host: "127.0.0.1",
			Port: 50151,
			RateLimit: RateLimitConfig{
				RPS:   20,
				Burst: 40,
			},
		},
		History: HistoryConfig{
			Path: filepath.Join(xdg.DataHome, "vibeui", "history.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: string(logging.FormatConsole),
		},
	}
}

// DefaultPath is where Load looks when no file is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "vibeui", "config.yaml")
}

// Load reads configuration. An explicit path must exist; otherwise the
// default location is optional.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "vibeui"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("profile", d.Profile)
	v.SetDefault("themes_dir", d.ThemesDir)
	v.SetDefault("project_dir", d.ProjectDir)
	v.SetDefault("include_builtin", d.IncludeBuiltin)
	v.SetDefault("daemon.host", d.Daemon.Host)
	v.SetDefault("daemon.port", d.Daemon.Port)
	v.SetDefault("daemon.rate_limit.rps", d.Daemon.RateLimit.RPS)
	v.SetDefault("daemon.rate_limit.burst", d.Daemon.RateLimit.Burst)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Validate checks field values and combinations.
func (c *Config) Validate() error {
	var errs []error

	if _, err := theme.ParseProfile(c.Profile); err != nil {
		errs = append(errs, err)
	}
	if c.Daemon.Port < 0 || c.Daemon.Port > 65535 {
		errs = append(errs, fmt.Errorf("daemon.port %d out of range", c.Daemon.Port))
	}
	if c.Daemon.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("daemon.rate_limit.rps must not be negative"))
	}
	if c.Daemon.RateLimit.RPS > 0 && c.Daemon.RateLimit.Burst < 1 {
		errs = append(errs, fmt.Errorf("daemon.rate_limit.burst must be at least 1 when rps is set"))
	}
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, fmt.Errorf("history.path is required when history is enabled"))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON, "":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.format %q", c.Logging.Format))
	}
	if c.ThemesDir == "" && !c.IncludeBuiltin && c.ProjectDir == "" {
		errs = append(errs, fmt.Errorf("no theme source: set themes_dir, project_dir or include_builtin"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ThemeProfile returns the parsed profile. Call after Validate.
func (c *Config) ThemeProfile() theme.Profile {
	p, err := theme.ParseProfile(c.Profile)
	if err != nil {
		return theme.ProfileDaisy
	}
	return p
}

// LoggerConfig converts the logging section for logging.Init.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = logging.Format(c.Logging.Format)
	lc.File = c.Logging.File
	return lc
}
