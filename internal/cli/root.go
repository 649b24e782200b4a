// Package cli implements the vibeui command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencode-ai/vibeui/internal/config"
	"github.com/opencode-ai/vibeui/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	themesDirFlag  string
	profileFlag    string
	jsonOutput     bool
	verbosity      int
	nonInteractive bool
	noProgress     bool

	appConfig *config.Config
	logOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "vibeui",
	Short: "Browse, resolve and render design themes",
	Long: `vibeui serves a catalog of design themes.

Themes are looked up by exact name or by a free-text intent such as
"dark futuristic neon", and rendered as DaisyUI or Tailwind CSS.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/vibeui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&themesDirFlag, "themes-dir", "", "extra directory of theme documents")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "theme profile: daisy or tailwind")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt or start interactive views")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute(version string) error {
	if version != "" {
		Version = version
	}
	rootCmd.Version = Version
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration, or nil before initConfig ran.
func GetConfig() *config.Config {
	return appConfig
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Fix the config file or the VIBEUI_* environment variables",
			NextStep: "vibeui --config <path> list",
		}
	}

	if themesDirFlag != "" {
		cfg.ThemesDir = themesDirFlag
	}
	if profileFlag != "" {
		cfg.Profile = profileFlag
	}
	switch {
	case verbosity >= 2:
		cfg.Logging.Level = zerolog.DebugLevel.String()
	case verbosity == 1:
		cfg.Logging.Level = zerolog.InfoLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(cfg.LoggerConfig(), logOutput); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	appConfig = cfg
	return nil
}

// ErrReported is returned when a command already wrote its failure to stdout
// and the process only needs a non-zero exit.
var ErrReported = errors.New("error already reported")
