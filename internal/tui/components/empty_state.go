// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/tui/styles"
)

// EmptyState is shown in place of a list that has nothing to show.
type EmptyState struct {
	Title    string
	Subtitle string
	// Suggestions are commands or keys that would fill the view.
	Suggestions []Suggestion
}

// Suggestion is a command or key with a short description.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	lines := []string{styleSet.Warning.Render(e.Title)}
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		for _, s := range e.Suggestions {
			line := "  " + styleSet.Accent.Render(s.Command)
			if s.Description != "" {
				line += styleSet.Muted.Render("  # " + s.Description)
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders the title and first suggestion on one line.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if len(e.Suggestions) > 0 {
		line += " Try: " + e.Suggestions[0].Command
	}
	return styleSet.Muted.Render(line)
}

// EmptyCatalog is shown when no theme was loaded at all.
func EmptyCatalog() EmptyState {
	return EmptyState{
		Title:    "No themes loaded",
		Subtitle: "Every source was empty, missing or held only invalid documents.",
		Suggestions: []Suggestion{
			{Command: "vibeui validate <dir>", Description: "see why documents were rejected"},
			{Command: "vibeui --themes-dir <dir> browse", Description: "browse another directory"},
		},
	}
}

// EmptyFiltered is shown when the search query matches nothing.
func EmptyFiltered(query string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No themes match %q", query),
		Subtitle: "Press / to edit the query or esc to clear it.",
	}
}
