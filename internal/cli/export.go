package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencode-ai/vibeui/internal/render"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportCSS   bool
	exportForce bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(&exportCSS, "css", false, "also write <id>.css rendered in the configured profile")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite existing files")
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every theme as a canonical YAML document",
	Long: `Write each catalog theme to <dir>/<id>.yaml in canonical form.

The files validate back to the same themes, so the directory can be used
as --themes-dir after editing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		dir := args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		var renderer *render.Renderer
		if exportCSS {
			r := a.service.Renderer()
			renderer = &r
		}

		result := ExportResult{Dir: dir, Files: []string{}}
		for _, rec := range a.catalog.List() {
			files, err := exportTheme(dir, rec, renderer, exportForce)
			if err != nil {
				return err
			}
			result.Files = append(result.Files, files...)
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}
		for _, f := range result.Files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d theme(s) to %s\n", len(a.catalog.List()), dir)
		return nil
	},
}

// ExportResult is the payload returned by `vibeui export --json`.
type ExportResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

func exportTheme(dir string, rec *theme.Record, renderer *render.Renderer, force bool) ([]string, error) {
	node, err := rec.Raw()
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme %s: %w", rec.ID, err)
	}

	path := filepath.Join(dir, rec.ID+".yaml")
	if err := writeExportFile(path, data, force); err != nil {
		return nil, err
	}
	files := []string{path}

	if renderer != nil {
		cssPath := filepath.Join(dir, rec.ID+".css")
		if err := writeExportFile(cssPath, []byte(renderer.CSS(rec)+"\n"), force); err != nil {
			return nil, err
		}
		files = append(files, cssPath)
	}
	return files, nil
}

func writeExportFile(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return &PreflightError{
				Message:  fmt.Sprintf("%s already exists", path),
				Hint:     "Choose an empty directory or pass --force",
				NextStep: "vibeui export --force <dir>",
			}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
