package styles

import (
	"strings"

	"github.com/opencode-ai/vibeui/internal/theme"
)

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Focus      string
	Success    string
	Warning    string
	Error      string
	Info       string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// DefaultTheme is the chrome palette and the fallback for missing roles.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background: "#0B0F14",
		Panel:      "#121821",
		Text:       "#E6EDF3",
		TextMuted:  "#8B9AAE",
		Border:     "#223043",
		Accent:     "#5B8DEF",
		Focus:      "#7AA2F7",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
		Info:       "#58A6FF",
	},
}

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background: "#000000",
		Panel:      "#0A0A0A",
		Text:       "#FFFFFF",
		TextMuted:  "#C0C0C0",
		Border:     "#FFFFFF",
		Accent:     "#00A2FF",
		Focus:      "#FFD400",
		Success:    "#00FF5A",
		Warning:    "#FFB000",
		Error:      "#FF4040",
		Info:       "#66CCFF",
	},
}

// Themes lists the chrome palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// roleKeys lists, per role, the token keys tried in order. DaisyUI names
// come first, then common Tailwind names.
var roleKeys = []struct {
	keys []string
	set  func(*ThemeTokens, string)
}{
	{[]string{"--color-base-100", "--color-background", "--color-bg"}, func(t *ThemeTokens, v string) { t.Background = v }},
	{[]string{"--color-base-200", "--color-surface", "--color-panel"}, func(t *ThemeTokens, v string) { t.Panel = v }},
	{[]string{"--color-base-content", "--color-foreground", "--color-text"}, func(t *ThemeTokens, v string) { t.Text = v }},
	{[]string{"--color-neutral-content", "--color-muted"}, func(t *ThemeTokens, v string) { t.TextMuted = v }},
	{[]string{"--color-base-300", "--color-border"}, func(t *ThemeTokens, v string) { t.Border = v }},
	{[]string{"--color-accent", "--color-secondary"}, func(t *ThemeTokens, v string) { t.Accent = v }},
	{[]string{"--color-primary"}, func(t *ThemeTokens, v string) { t.Focus = v }},
	{[]string{"--color-success"}, func(t *ThemeTokens, v string) { t.Success = v }},
	{[]string{"--color-warning"}, func(t *ThemeTokens, v string) { t.Warning = v }},
	{[]string{"--color-error", "--color-danger"}, func(t *ThemeTokens, v string) { t.Error = v }},
	{[]string{"--color-info"}, func(t *ThemeTokens, v string) { t.Info = v }},
}

// FromRecord maps a theme record's color tokens onto TUI roles. Roles the
// record leaves out, or gives a value a terminal cannot show, keep the
// fallback palette's color.
func FromRecord(rec *theme.Record, fallback Theme) Theme {
	tokens := fallback.Tokens
	for _, role := range roleKeys {
		for _, key := range role.keys {
			if v, ok := rec.Tokens.Get(key); ok && IsHexColor(v) {
				role.set(&tokens, v)
				break
			}
		}
	}
	return Theme{Name: rec.ID, Tokens: tokens}
}

// IsHexColor reports whether v is a #rgb or #rrggbb color.
func IsHexColor(v string) bool {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "#") || (len(v) != 4 && len(v) != 7) {
		return false
	}
	for _, r := range v[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
