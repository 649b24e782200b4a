package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/render"
	"github.com/opencode-ai/vibeui/internal/service"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/spf13/cobra"
)

var (
	listFormat  string
	getFormat   string
	matchFormat string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(configCmd)

	listCmd.Flags().StringVar(&listFormat, "format", string(service.FormatSummary), "JSON detail level: summary or detailed")
	getCmd.Flags().StringVar(&getFormat, "format", string(service.FormatDetailed), "detail level: summary or detailed")
	matchCmd.Flags().StringVar(&matchFormat, "format", string(service.FormatDetailed), "detail level: summary or detailed")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Long:  "List every theme in the catalog, ordered by name.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if IsJSONOutput() {
			return writeEnvelope(cmd.OutOrStdout(), a.service.List(cmd.Context(), listFormat))
		}

		records := a.catalog.List()
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No themes found.")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, rec := range records {
			rows = append(rows, []string{
				rec.ID,
				rec.Name,
				strings.Join(rec.Tags, ", "),
				truncate(rec.Description, 48),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TAGS", "DESCRIPTION"}, rows)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a theme by exact name",
	Long: `Show a theme by id, display name or alias.

Matching ignores case and surrounding space. Spaces inside the name become
hyphens, so "Retro Wave" finds retro-wave.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		env := a.service.GetByName(cmd.Context(), strings.Join(args, " "), getFormat)
		return writeEnvelope(cmd.OutOrStdout(), env)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <intent...>",
	Short: "Find the theme that best fits a description",
	Long: `Find the theme that best fits a free-text description.

Each word of three or more letters scores 3 points when it equals a tag,
alias or id, and 1 point when it only appears inside the theme's
searchable text, which includes the name. The highest score wins.`,
	Example: "  vibeui match dark futuristic neon",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		env := a.service.GetByIntent(cmd.Context(), strings.Join(args, " "), matchFormat)
		return writeEnvelope(cmd.OutOrStdout(), env)
	},
}

var cssCmd = &cobra.Command{
	Use:   "css <name>",
	Short: "Print a theme's CSS",
	Long:  "Print the CSS variable block, font roles and keyframes for a theme in the configured profile.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, rec, err := lookupTheme(cmd, args)
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = fmt.Fprintln(cmd.OutOrStdout(), a.service.Renderer().CSS(rec))
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config <name>",
	Short: "Print a theme as a Tailwind config fragment",
	Long:  "Print the theme.extend fragment for tailwind.config.js derived from a theme's tokens.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, rec, err := lookupTheme(cmd, args)
		if err != nil {
			return err
		}
		defer a.Close()

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), render.Config(rec))
		}
		text, err := render.ConfigString(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

// lookupTheme resolves args by exact name. On success the caller owns the
// returned app and must Close it.
func lookupTheme(cmd *cobra.Command, args []string) (*app, *theme.Record, error) {
	a, err := openApp(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	rec, err := a.service.Resolver().Lookup(strings.Join(args, " "))
	if err != nil {
		a.Close()
		return nil, nil, notFoundError(err)
	}
	return a, rec, nil
}

func notFoundError(err error) error {
	var nf *theme.NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	pe := &PreflightError{
		Message:  fmt.Sprintf("Design %q not found", nf.Name),
		NextStep: "vibeui list",
	}
	if len(nf.Suggestions) > 0 {
		pe.Hint = "Did you mean: " + strings.Join(nf.Suggestions, ", ") + "?"
	}
	return pe
}
