package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/vibeui/internal/theme"
)

func TestIsHexColor(t *testing.T) {
	tests := map[string]bool{
		"#fff":           true,
		"#FF00ff":        true,
		" #123456 ":      true,
		"#12345":         false,
		"fff":            false,
		"#ggg":           false,
		"oklch(70% 0 0)": false,
	}
	for in, want := range tests {
		if got := IsHexColor(in); got != want {
			t.Errorf("IsHexColor(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromRecordDaisyKeys(t *testing.T) {
	rec := &theme.Record{
		ID: "cyberpunk",
		Tokens: theme.NewOrderedMap(
			theme.P("--color-base-100", "#0d0221"),
			theme.P("--color-base-content", "#f0e6ff"),
			theme.P("--color-primary", "#ff00ff"),
			theme.P("--color-error", "oklch(60% 0.2 20)"),
		),
	}

	got := FromRecord(rec, DefaultTheme)
	if got.Name != "cyberpunk" {
		t.Errorf("Name = %q, want cyberpunk", got.Name)
	}
	if got.Tokens.Background != "#0d0221" {
		t.Errorf("Background = %q", got.Tokens.Background)
	}
	if got.Tokens.Text != "#f0e6ff" {
		t.Errorf("Text = %q", got.Tokens.Text)
	}
	if got.Tokens.Focus != "#ff00ff" {
		t.Errorf("Focus = %q", got.Tokens.Focus)
	}
	if got.Tokens.Error != DefaultTheme.Tokens.Error {
		t.Errorf("Error = %q, want fallback for non-hex value", got.Tokens.Error)
	}
	if got.Tokens.Panel != DefaultTheme.Tokens.Panel {
		t.Errorf("Panel = %q, want fallback for missing key", got.Tokens.Panel)
	}
}

func TestFromRecordTailwindKeys(t *testing.T) {
	rec := &theme.Record{
		ID: "paper",
		Tokens: theme.NewOrderedMap(
			theme.P("--color-background", "#fafafa"),
			theme.P("--color-foreground", "#111"),
			theme.P("--color-danger", "#c00"),
		),
	}

	got := FromRecord(rec, HighContrastTheme)
	if got.Tokens.Background != "#fafafa" || got.Tokens.Text != "#111" || got.Tokens.Error != "#c00" {
		t.Errorf("unexpected tokens: %+v", got.Tokens)
	}
	if got.Tokens.Accent != HighContrastTheme.Tokens.Accent {
		t.Errorf("Accent = %q, want high-contrast fallback", got.Tokens.Accent)
	}
}

func TestSwatchListsColorTokensInOrder(t *testing.T) {
	rec := &theme.Record{
		Tokens: theme.NewOrderedMap(
			theme.P("--color-primary", "#ff00ff"),
			theme.P("--radius-box", "0.5rem"),
			theme.P("--color-base-100", "oklch(20% 0 0)"),
		),
	}

	out := Swatch(rec, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Swatch() lines = %d, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "--color-primary") || !strings.Contains(lines[0], "#ff00ff") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "····") {
		t.Errorf("non-hex value should get a placeholder: %q", lines[1])
	}
	if strings.Contains(out, "--radius-box") {
		t.Error("non-color tokens should be skipped")
	}
}

func TestSampleIncludesName(t *testing.T) {
	rec := &theme.Record{ID: "x", Name: "Retro Wave", Tokens: theme.NewOrderedMap(theme.P("--color-primary", "#f0f"))}
	if out := Sample(rec); !strings.Contains(out, "Retro Wave") {
		t.Errorf("Sample() missing name:\n%s", out)
	}
}

func TestThemesRegistry(t *testing.T) {
	for _, name := range []string{"default", "high-contrast"} {
		if _, ok := Themes[name]; !ok {
			t.Errorf("missing theme %q", name)
		}
	}
}
