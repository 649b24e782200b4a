package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/opencode-ai/vibeui/internal/models"
	"github.com/opencode-ai/vibeui/internal/themed"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir       string
	themesDir string
	config    string
}

// newTestEnv points XDG at a temp dir and writes a config with builtin
// themes, an empty themes directory and history in the temp dir.
func newTestEnv(t *testing.T, history bool) *testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_DATA_DIRS", filepath.Join(dir, "share"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	env := &testEnv{
		dir:       dir,
		themesDir: filepath.Join(dir, "themes"),
		config:    filepath.Join(dir, "vibeui.yaml"),
	}
	require.NoError(t, os.MkdirAll(env.themesDir, 0o755))

	content := fmt.Sprintf(`include_builtin: true
themes_dir: %s
history:
  enabled: %t
  path: %s
logging:
  level: error
`, env.themesDir, history, filepath.Join(dir, "history.db"))
	require.NoError(t, os.WriteFile(env.config, []byte(content), 0o644))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	logOutput = io.Discard
	progressOutput = io.Discard

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestListTable(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "Retro Wave")
	assert.True(t, strings.HasPrefix(lines[1], "brutalist"), "rows are ordered by name")
}

func TestListJSON(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "list", "--json")
	require.NoError(t, err)

	var got struct {
		Count  int      `json:"count"`
		Themes []string `json:"themes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.Count)
	assert.Contains(t, got.Themes, "cyberpunk")
}

func TestGetByName(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "get", "Retro", "Wave")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "retro-wave"`)
	assert.NotContains(t, out, `"matchedBy"`)
}

func TestGetByNameNotFound(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "get", "Cyber Punk")
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, `"error": "not_found"`)
	assert.Contains(t, out, `Design \"Cyber Punk\" not found`)
}

func TestMatchIntent(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "match", "dark", "futuristic", "neon")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "cyberpunk"`)
	assert.Contains(t, out, `"score": 9`)
}

func TestMatchHelpDescribesScoring(t *testing.T) {
	assert.Contains(t, matchCmd.Long, "tag,\nalias or id")
	assert.NotContains(t, matchCmd.Long, "name word")
}

func TestMatchNoKeywords(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "match", "a", "of")
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, `"error": "no_match"`)
}

func TestCSSAndConfig(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "css", "cyberpunk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "/* DaisyUI v5 theme variables for cyberpunk */\n"))
	assert.Contains(t, out, `[data-theme="cyberpunk"] {`)

	out, err = env.run(t, "config", "cyber")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// Tailwind config for Cyberpunk\n"))
	assert.Contains(t, out, `"colors"`)
}

func TestCSSUnknownTheme(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "css", "cyberpnk")
	var pe *PreflightError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, `Design "cyberpnk" not found`, pe.Message)
	assert.Contains(t, pe.Hint, "cyberpunk")
}

func TestValidateDir(t *testing.T) {
	env := newTestEnv(t, false)

	good, err := os.ReadFile(filepath.Join("..", "catalog", "builtin", "cyberpunk.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(env.themesDir, "cyberpunk.json"), good, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.themesDir, "bad.yaml"), []byte("id: Bad Id\nname: Bad\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.themesDir, "notes.txt"), []byte("ignored"), 0o644))

	out, err := env.run(t, "validate", env.themesDir)
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, "cyberpunk")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "1 accepted, 1 rejected (daisy profile)")

	out, err = env.run(t, "validate", env.themesDir, "--json")
	require.ErrorIs(t, err, ErrReported)
	var report validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"cyberpunk"}, report.Accepted)
	require.Len(t, report.Rejected, 1)
	assert.NotEmpty(t, report.Rejected[0].Issues)
}

func TestValidateMissingDir(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "validate", filepath.Join(env.dir, "missing"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReported)
}

func TestUserThemeShadowsBuiltin(t *testing.T) {
	env := newTestEnv(t, false)

	good, err := os.ReadFile(filepath.Join("..", "catalog", "builtin", "cyberpunk.json"))
	require.NoError(t, err)
	custom := strings.Replace(string(good), `"name": "Cyberpunk"`, `"name": "Cyberpunk Custom"`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(env.themesDir, "cyberpunk.json"), []byte(custom), 0o644))

	out, err := env.run(t, "get", "cyberpunk")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Cyberpunk Custom"`)
}

func TestHistoryRecordsLookups(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := env.run(t, "match", "dark", "neon")
	require.NoError(t, err)
	_, err = env.run(t, "get", "nope")
	require.ErrorIs(t, err, ErrReported)

	out, err := env.run(t, "history", "--json")
	require.NoError(t, err)
	var page struct {
		Lookups []models.Lookup `json:"lookups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Lookups, 2)
	assert.Equal(t, models.OutcomeNotFound, page.Lookups[0].Outcome)
	assert.Equal(t, "cyberpunk", page.Lookups[1].ThemeID)

	out, err = env.run(t, "history", "--kind", "intent")
	require.NoError(t, err)
	assert.Contains(t, out, "dark neon")
	assert.NotContains(t, out, "nope")

	out, err = env.run(t, "history", "top")
	require.NoError(t, err)
	assert.Contains(t, out, "cyberpunk")

	out, err = env.run(t, "history", "prune", "--older-than", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 lookup(s).")
}

func TestBuildLookupQuery(t *testing.T) {
	defer resetFlags(historyCmd)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	historyKind = "Name"
	historyOutcome = "not_found"
	historyTheme = "cyberpunk"
	historySince = time.Hour
	historyLimit = 5

	q, err := buildLookupQuery(now)
	require.NoError(t, err)
	assert.Equal(t, models.LookupKindName, *q.Kind)
	assert.Equal(t, models.OutcomeNotFound, *q.Outcome)
	assert.Equal(t, "cyberpunk", *q.ThemeID)
	assert.Equal(t, now.Add(-time.Hour), *q.Since)
	assert.Equal(t, 5, q.Limit)

	historyOutcome = "maybe"
	_, err = buildLookupQuery(now)
	assert.Error(t, err)
}

func TestBrowseRequiresInteractive(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "browse", "--non-interactive")
	var pe *PreflightError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "interactive terminal")
}

func TestPreviewText(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "preview", "retro-wave", "--css")
	require.NoError(t, err)
	assert.Contains(t, out, "Retro Wave")
	assert.Contains(t, out, "--color-primary")
	assert.Contains(t, out, `[data-theme="retro-wave"]`)

	_, err = env.run(t, "preview", "retro-wave", "--palette", "neon")
	assert.Error(t, err)
}

func TestRunClientUnknownMethod(t *testing.T) {
	cmd := &cobra.Command{}
	err := runClient(t.Context(), cmd, themed.NewClient(nil), "delete", "")

	var pe *PreflightError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "delete")
}

func TestRunClientMissingArgument(t *testing.T) {
	cmd := &cobra.Command{}
	assert.Error(t, runClient(t.Context(), cmd, themed.NewClient(nil), "get", ""))
	assert.Error(t, runClient(t.Context(), cmd, themed.NewClient(nil), "match", ""))
}

func TestInvalidProfileFlag(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "list", "--profile", "bootstrap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile")
}

func TestPreflightErrorFormat(t *testing.T) {
	err := &PreflightError{Message: "boom", Hint: "try again", NextStep: "vibeui list"}
	assert.Equal(t, "boom\nHint: try again\nNext: vibeui list", err.Error())
	assert.Equal(t, "boom", (&PreflightError{Message: "boom"}).Error())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "abcdefghij", truncate("abcdefghij", 3))
}

func TestExportRoundTrip(t *testing.T) {
	env := newTestEnv(t, false)
	outDir := filepath.Join(env.dir, "export")

	out, err := env.run(t, "export", outDir, "--css")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 6 theme(s)")
	assert.FileExists(t, filepath.Join(outDir, "cyberpunk.yaml"))
	assert.FileExists(t, filepath.Join(outDir, "cyberpunk.css"))

	_, err = env.run(t, "export", outDir)
	var pe *PreflightError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "already exists")

	require.NoError(t, os.Remove(filepath.Join(outDir, "cyberpunk.css")))
	out, err = env.run(t, "validate", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "6 accepted, 0 rejected")
}

func TestFormatOutcome(t *testing.T) {
	tests := map[models.LookupOutcome]string{
		models.OutcomeMatched:       "OK matched",
		models.OutcomeNotFound:      "MISS not found",
		models.OutcomeNoMatch:       "MISS no match",
		models.OutcomeInvalidFormat: "ERR invalid format",
	}
	for outcome, want := range tests {
		assert.Contains(t, formatOutcome(outcome), want)
	}
	assert.Equal(t, "WARN", formatStatusLabel("WARN", " "))
}
