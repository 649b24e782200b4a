package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/catalog"
	"github.com/opencode-ai/vibeui/internal/logging"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validateReport struct {
	Dir      string          `json:"dir"`
	Profile  string          `json:"profile"`
	Accepted []string        `json:"accepted"`
	Rejected []rejectedTheme `json:"rejected"`
	Warnings []string        `json:"warnings,omitempty"`
}

type rejectedTheme struct {
	Origin string        `json:"origin"`
	ID     string        `json:"id,omitempty"`
	Error  string        `json:"error"`
	Issues []theme.Issue `json:"issues,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Check theme documents in a directory",
	Long: `Validate every .json, .yaml and .yml theme in a directory against the
configured profile, and report which would be accepted.

Exits non-zero when any document is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		validator, err := newValidator(cfg)
		if err != nil {
			return err
		}

		step := startProgress(fmt.Sprintf("Validating %s", args[0]))
		report, err := validateDir(args[0], validator, cfg.Profile)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		if IsJSONOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), report); err != nil {
				return err
			}
		} else if err := writeValidateReport(cmd, report); err != nil {
			return err
		}

		if len(report.Rejected) > 0 {
			return ErrReported
		}
		return nil
	},
}

func validateDir(dir string, validator *theme.Validator, profile string) (*validateReport, error) {
	cat := catalog.New(catalog.DirSource{Dir: dir}, validator, catalog.WithLogger(logging.Component("validate")))
	result := cat.Load()
	if result.SourceErr != nil {
		return nil, result.SourceErr
	}

	report := &validateReport{
		Dir:      dir,
		Profile:  profile,
		Accepted: make([]string, 0, len(result.Accepted)),
		Rejected: make([]rejectedTheme, 0, len(result.Rejected)),
		Warnings: result.Warnings,
	}
	for _, rec := range result.Accepted {
		report.Accepted = append(report.Accepted, rec.ID)
	}
	for _, rej := range result.Rejected {
		entry := rejectedTheme{Origin: rej.Origin, Error: rej.Err.Error()}
		var verr *theme.ValidationError
		if errors.As(rej.Err, &verr) {
			entry.ID = verr.ID
			entry.Issues = verr.Issues
		}
		report.Rejected = append(report.Rejected, entry)
	}
	return report, nil
}

func writeValidateReport(cmd *cobra.Command, report *validateReport) error {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(report.Accepted)+len(report.Rejected))
	for _, id := range report.Accepted {
		rows = append(rows, []string{id, "ok", ""})
	}
	for _, rej := range report.Rejected {
		name := rej.ID
		if name == "" {
			name = rej.Origin
		}
		detail := rej.Error
		if len(rej.Issues) > 0 {
			parts := make([]string, len(rej.Issues))
			for i, issue := range rej.Issues {
				parts[i] = issue.String()
			}
			detail = strings.Join(parts, "; ")
		}
		rows = append(rows, []string{name, "rejected", truncate(detail, 80)})
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No theme documents in %s.\n", report.Dir)
		return nil
	}
	if err := writeTable(out, []string{"THEME", "STATUS", "DETAIL"}, rows); err != nil {
		return err
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintf(out, "\n%d accepted, %d rejected (%s profile)\n", len(report.Accepted), len(report.Rejected), report.Profile)
	return nil
}
