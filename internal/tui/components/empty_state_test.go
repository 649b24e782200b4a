package components

import (
	"strings"
	"testing"

	"github.com/opencode-ai/vibeui/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	t.Run("title only", func(t *testing.T) {
		result := EmptyState{Title: "Nothing here"}.Render(styleSet)
		if !strings.Contains(result, "Nothing here") {
			t.Errorf("Expected title in output, got: %s", result)
		}
		if strings.Contains(result, "\n") {
			t.Errorf("Expected a single line, got: %s", result)
		}
	})

	t.Run("with suggestions", func(t *testing.T) {
		result := EmptyCatalog().Render(styleSet)
		for _, want := range []string{"No themes loaded", "vibeui validate <dir>", "# see why"} {
			if !strings.Contains(result, want) {
				t.Errorf("Expected %q in output, got: %s", want, result)
			}
		}
	})
}

func TestEmptyStateRenderCompact(t *testing.T) {
	styleSet := styles.DefaultStyles()

	result := EmptyCatalog().RenderCompact(styleSet)
	if !strings.Contains(result, "Try: vibeui validate <dir>") {
		t.Errorf("Expected first suggestion in compact output, got: %s", result)
	}

	result = EmptyFiltered("zzz").RenderCompact(styleSet)
	if strings.Contains(result, "Try:") {
		t.Errorf("Expected no suggestion, got: %s", result)
	}
}

func TestEmptyFiltered(t *testing.T) {
	result := EmptyFiltered("dark neon").Render(styles.DefaultStyles())
	if !strings.Contains(result, `No themes match "dark neon"`) {
		t.Errorf("Expected query in output, got: %s", result)
	}
	if !strings.Contains(result, "Press /") {
		t.Errorf("Expected search hint in output, got: %s", result)
	}
}
