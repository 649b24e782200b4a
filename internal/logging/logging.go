// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format is the console output format.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config holds logger settings.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn or error.
	Level string
	// Format selects console (human) or json output on stderr.
	Format Format
	// File, when set, also writes JSON logs to a rotated file.
	File string
	// MaxSizeMB is the size at which the log file rotates.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
}

// DefaultConfig returns warn-level console logging with no file.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: FormatConsole, MaxSizeMB: 10, MaxBackups: 3}
}

// Init replaces the global logger. out is the console stream, normally
// os.Stderr.
func Init(cfg Config, out io.Writer) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var console io.Writer = out
	switch cfg.Format {
	case FormatJSON:
	case FormatConsole, "":
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
	}

	writers := []io.Writer{console}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
	}

	logger := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
	return nil
}

// ParseLevel converts a level name. Empty means warn.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
