package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/theme"
)

// FrameworkConfig is the Tailwind `theme.extend` shape of a record.
type FrameworkConfig struct {
	Colors       theme.OrderedMap[string]   `json:"colors"`
	BorderRadius theme.OrderedMap[string]   `json:"borderRadius"`
	Spacing      theme.OrderedMap[string]   `json:"spacing,omitzero"`
	FontFamily   theme.OrderedMap[[]string] `json:"fontFamily,omitzero"`
}

// tokenGroups maps token prefixes to config sections, in output order.
var tokenGroups = []struct {
	prefix  string
	section func(*FrameworkConfig) *theme.OrderedMap[string]
}{
	{prefix: "--color-", section: func(c *FrameworkConfig) *theme.OrderedMap[string] { return &c.Colors }},
	{prefix: "--radius-", section: func(c *FrameworkConfig) *theme.OrderedMap[string] { return &c.BorderRadius }},
	{prefix: "--size-", section: func(c *FrameworkConfig) *theme.OrderedMap[string] { return &c.Spacing }},
}

// Config projects a record's tokens into framework config sections.
// Values pass through untouched; tokens without a known prefix are left out.
func Config(rec *theme.Record) FrameworkConfig {
	var cfg FrameworkConfig
	for key, value := range rec.Tokens.All() {
		for _, g := range tokenGroups {
			if name, ok := strings.CutPrefix(key, g.prefix); ok && name != "" {
				g.section(&cfg).Set(name, value)
				break
			}
		}
	}
	cfg.FontFamily = rec.FontFamilies.Clone()
	return cfg
}

// ConfigString renders the config as a commented snippet to paste into
// tailwind.config.js.
func ConfigString(rec *theme.Record) (string, error) {
	data, err := json.MarshalIndent(Config(rec), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal config for %s: %w", rec.ID, err)
	}
	return fmt.Sprintf("// Tailwind config for %s\n// Add to tailwind.config.js: theme.extend\n%s", rec.Name, data), nil
}
