// Package styles turns palettes and theme records into lipgloss styles.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/vibeui/internal/theme"
)

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme    Theme
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Panel    lipgloss.Style
	Border   lipgloss.Style
	Focus    lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:    theme,
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Panel)).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Focus:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Background)).Background(lipgloss.Color(tokens.Focus)).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Info)),
	}
}

// Swatch renders one line per color token: a color block, the key and the
// value. Values a terminal cannot show get a placeholder block.
func Swatch(rec *theme.Record, muted lipgloss.Style) string {
	width := 0
	for key := range rec.Tokens.All() {
		if strings.HasPrefix(key, "--color-") && len(key) > width {
			width = len(key)
		}
	}

	var lines []string
	for key, value := range rec.Tokens.All() {
		if !strings.HasPrefix(key, "--color-") {
			continue
		}
		block := muted.Render("····")
		if IsHexColor(value) {
			block = lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("    ")
		}
		lines = append(lines, fmt.Sprintf("%s %-*s %s", block, width, key, value))
	}
	return strings.Join(lines, "\n")
}

// Sample renders a short specimen of the record's own palette.
func Sample(rec *theme.Record) string {
	s := BuildStyles(FromRecord(rec, DefaultTheme))
	body := strings.Join([]string{
		s.Title.Render(rec.Name),
		s.Text.Render("The quick brown fox jumps over the lazy dog."),
		s.Muted.Render("Secondary text"),
		fmt.Sprintf("%s  %s  %s  %s",
			s.Focus.Render("primary"),
			s.Accent.Render("accent"),
			s.Success.Render("success"),
			s.Error.Render("error"),
		),
	}, "\n")
	return s.Panel.Render(body)
}
