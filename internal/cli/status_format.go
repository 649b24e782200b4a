package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencode-ai/vibeui/internal/models"
)

var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorRed    = lipgloss.Color("1")
	colorCyan   = lipgloss.Color("6")
)

func formatOutcome(outcome models.LookupOutcome) string {
	label, color := outcomeLabel(outcome)
	return colorize(formatStatusLabel(label, string(outcome)), color)
}

func outcomeLabel(outcome models.LookupOutcome) (string, lipgloss.Color) {
	switch outcome {
	case models.OutcomeMatched:
		return "OK", colorGreen
	case models.OutcomeNotFound, models.OutcomeNoMatch:
		return "MISS", colorYellow
	case models.OutcomeInvalidFormat:
		return "ERR", colorRed
	default:
		return "WARN", colorCyan
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(strings.ReplaceAll(status, "_", " "))
	if normalized == "" {
		return label
	}
	return label + " " + normalized
}

// colorize is a no-op when stdout is not a color terminal.
func colorize(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
