package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/opencode-ai/vibeui/internal/tui"
	"github.com/opencode-ai/vibeui/internal/tui/styles"
	"github.com/spf13/cobra"
)

var (
	previewCSS bool
	palette    string
)

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(browseCmd)

	previewCmd.Flags().BoolVar(&previewCSS, "css", false, "also print the rendered CSS")
	previewCmd.Flags().StringVar(&palette, "palette", "default", "chrome palette: default or high-contrast")
	browseCmd.Flags().StringVar(&palette, "palette", "default", "chrome palette: default or high-contrast")
}

var previewCmd = &cobra.Command{
	Use:   "preview <name>",
	Short: "Show a theme's colors in the terminal",
	Long:  "Show color swatches and a text sample rendered with the theme's own palette.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, rec, err := lookupTheme(cmd, args)
		if err != nil {
			return err
		}
		defer a.Close()

		chrome, ok := styles.Themes[palette]
		if !ok {
			return fmt.Errorf("unknown palette %q", palette)
		}

		out := previewText(rec, styles.BuildStyles(chrome), terminalWidth(80))
		if previewCSS {
			out += "\n\n" + a.service.Renderer().CSS(rec)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func previewText(rec *theme.Record, s styles.Styles, width int) string {
	header := s.Title.Render(rec.Name) + " " + s.Muted.Render("("+rec.ID+")")
	lines := []string{header}
	if len(rec.Tags) > 0 {
		lines = append(lines, s.Muted.Render("tags: "+strings.Join(rec.Tags, ", ")))
	}
	if rec.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Width(min(width, 100)).Render(rec.Description))
	}
	lines = append(lines, "", styles.Swatch(rec, s.Muted), "", styles.Sample(rec))
	return strings.Join(lines, "\n")
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse themes interactively",
	Long:  "Open a terminal browser to search themes by name or intent and preview them.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return &PreflightError{
				Message:  "browse requires an interactive terminal",
				Hint:     "Run without --non-interactive and with a TTY, or use list and preview",
				NextStep: "vibeui list",
			}
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return tui.Run(tui.Config{
			Records:  a.catalog.List(),
			Renderer: a.service.Renderer(),
			Palette:  palette,
		})
	},
}
