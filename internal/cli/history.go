package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/opencode-ai/vibeui/internal/db"
	"github.com/opencode-ai/vibeui/internal/models"
	"github.com/spf13/cobra"
)

var (
	historyKind    string
	historyOutcome string
	historyTheme   string
	historySince   time.Duration
	historyLimit   int
	historyCursor  string

	historyTopLimit int

	historyPruneOlder time.Duration
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyTopCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().StringVar(&historyKind, "kind", "", "filter by kind: list, name or intent")
	historyCmd.Flags().StringVar(&historyOutcome, "outcome", "", "filter by outcome: matched, not_found, no_match, invalid_format")
	historyCmd.Flags().StringVar(&historyTheme, "theme", "", "filter by resolved theme id")
	historyCmd.Flags().DurationVar(&historySince, "since", 0, "only lookups newer than this (e.g. 24h)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max lookups to show")
	historyCmd.Flags().StringVar(&historyCursor, "cursor", "", "continue after this lookup id")

	historyTopCmd.Flags().IntVar(&historyTopLimit, "limit", 10, "max themes to show")

	historyPruneCmd.Flags().DurationVar(&historyPruneOlder, "older-than", 30*24*time.Hour, "delete lookups older than this")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lookups",
	Long: `Show lookups recorded by the facade, newest first.

Recording is off unless history.enabled is set in the config file or
VIBEUI_HISTORY_ENABLED=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := buildLookupQuery(time.Now())
		if err != nil {
			return err
		}

		repo, closeFn, err := openHistoryRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		page, err := repo.Query(cmd.Context(), query)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), page)
		}
		if len(page.Lookups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lookups recorded.")
			return nil
		}

		rows := make([][]string, 0, len(page.Lookups))
		for _, l := range page.Lookups {
			score := ""
			if l.Score > 0 {
				score = strconv.Itoa(l.Score)
			}
			rows = append(rows, []string{
				l.Timestamp.Local().Format(time.DateTime),
				string(l.Kind),
				truncate(l.Query, 32),
				formatOutcome(l.Outcome),
				l.ThemeID,
				score,
			})
		}
		if err := writeTable(cmd.OutOrStdout(), []string{"TIME", "KIND", "QUERY", "OUTCOME", "THEME", "SCORE"}, rows); err != nil {
			return err
		}
		if page.NextCursor != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nMore: vibeui history --cursor %s\n", page.NextCursor)
		}
		return nil
	},
}

var historyTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most served themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeFn, err := openHistoryRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		counts, err := repo.TopThemes(cmd.Context(), historyTopLimit)
		if err != nil {
			return err
		}
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), counts)
		}

		rows := make([][]string, 0, len(counts))
		for _, c := range counts {
			rows = append(rows, []string{c.ThemeID, strconv.Itoa(c.Count)})
		}
		return writeTable(cmd.OutOrStdout(), []string{"THEME", "LOOKUPS"}, rows)
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old lookups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyPruneOlder <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		repo, closeFn, err := openHistoryRepo(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		removed, err := repo.Prune(cmd.Context(), time.Now().Add(-historyPruneOlder))
		if err != nil {
			return err
		}
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]int64{"removed": removed})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d lookup(s).\n", removed)
		return nil
	},
}

// openHistoryRepo opens the history database even when recording is off,
// so past lookups stay readable.
func openHistoryRepo(cmd *cobra.Command) (*db.LookupRepository, func() error, error) {
	database, err := openDatabase(cmd.Context(), GetConfig().History.Path)
	if err != nil {
		return nil, nil, err
	}
	return db.NewLookupRepository(database), database.Close, nil
}

func buildLookupQuery(now time.Time) (db.LookupQuery, error) {
	query := db.LookupQuery{Limit: historyLimit, Cursor: historyCursor}

	if historyKind != "" {
		kind, err := models.ParseLookupKind(historyKind)
		if err != nil {
			return query, err
		}
		query.Kind = &kind
	}
	if historyOutcome != "" {
		outcome := models.LookupOutcome(historyOutcome)
		switch outcome {
		case models.OutcomeMatched, models.OutcomeNotFound, models.OutcomeNoMatch, models.OutcomeInvalidFormat:
		default:
			return query, fmt.Errorf("unknown outcome %q", historyOutcome)
		}
		query.Outcome = &outcome
	}
	if historyTheme != "" {
		theme := historyTheme
		query.ThemeID = &theme
	}
	if historySince > 0 {
		since := now.Add(-historySince)
		query.Since = &since
	}
	return query, nil
}
