package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *theme.Record {
	return &theme.Record{
		ID:   "cyberpunk",
		Name: "Cyberpunk",
		Tags: []string{"dark", "neon"},
		Tokens: theme.NewOrderedMap(
			theme.P("--color-primary", "#ff00ff"),
			theme.P("--color-base-100", "#0d0221"),
			theme.P("--radius-box", "0.125rem"),
			theme.P("--size-field", "0.25rem"),
			theme.P("--border", "1px"),
		),
		FontFamilies: theme.NewOrderedMap(
			theme.P("display", []string{"Orbitron", "sans-serif"}),
			theme.P("mono", []string{"Share Tech Mono", "monospace"}),
		),
	}
}

func TestDaisyCSS(t *testing.T) {
	got := New(theme.ProfileDaisy).CSS(sample())
	want := `/* DaisyUI v5 theme variables for cyberpunk */
[data-theme="cyberpunk"] {
  --color-primary: #ff00ff;
  --color-base-100: #0d0221;
  --radius-box: 0.125rem;
  --size-field: 0.25rem;
  --border: 1px;
  --font-display: Orbitron, sans-serif;
  --font-mono: "Share Tech Mono", monospace;
}`
	assert.Equal(t, want, got)
}

func TestTailwindCSSWithKeyframes(t *testing.T) {
	rec := sample()
	rec.FontFamilies = theme.OrderedMap[[]string]{}
	rec.Keyframes = theme.NewOrderedMap(
		theme.P("glitch", "0% { opacity: 1; }\n100% { opacity: 0; }\n"),
		theme.P("pulse", "50% { opacity: .5; }"),
	)

	got := New(theme.ProfileTailwind).CSS(rec)
	want := `/* Cyberpunk Theme */
@theme {
  --color-primary: #ff00ff;
  --color-base-100: #0d0221;
  --radius-box: 0.125rem;
  --size-field: 0.25rem;
  --border: 1px;
}

/* Animations */
@keyframes glitch {
0% { opacity: 1; }
100% { opacity: 0; }
}

@keyframes pulse {
50% { opacity: .5; }
}`
	assert.Equal(t, want, got)
}

func TestCSSEmptyTokens(t *testing.T) {
	rec := &theme.Record{ID: "bare", Name: "Bare"}
	assert.Equal(t, "[data-theme=\"bare\"] {\n}", New(theme.ProfileDaisy).Block(rec))
	assert.Empty(t, Keyframes(rec))
}

func TestCSSIsDeterministic(t *testing.T) {
	r := New(theme.ProfileDaisy)
	first := r.CSS(sample())
	for i := 0; i < 20; i++ {
		require.Equal(t, first, r.CSS(sample()))
	}
	assert.Less(t, strings.Index(first, "--color-primary"), strings.Index(first, "--color-base-100"))
}

func TestFontList(t *testing.T) {
	assert.Equal(t, `"Fira Code", monospace`, FontList([]string{"Fira Code", "monospace"}))
	assert.Equal(t, "", FontList(nil))
}

func TestConfigProjection(t *testing.T) {
	cfg := Config(sample())

	assert.Equal(t, []string{"primary", "base-100"}, cfg.Colors.Keys())
	v, _ := cfg.Colors.Get("primary")
	assert.Equal(t, "#ff00ff", v)
	assert.Equal(t, []string{"box"}, cfg.BorderRadius.Keys())
	assert.Equal(t, []string{"field"}, cfg.Spacing.Keys())
	assert.Equal(t, []string{"display", "mono"}, cfg.FontFamily.Keys())

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"colors": {"primary": "#ff00ff", "base-100": "#0d0221"},
		"borderRadius": {"box": "0.125rem"},
		"spacing": {"field": "0.25rem"},
		"fontFamily": {"display": ["Orbitron", "sans-serif"], "mono": ["Share Tech Mono", "monospace"]}
	}`, string(data))
	assert.NotContains(t, string(data), "border\"")
}

func TestConfigOmitsEmptyOptionalSections(t *testing.T) {
	rec := &theme.Record{ID: "x", Name: "X", Tokens: theme.NewOrderedMap(theme.P("--color-primary", "red"))}
	data, err := json.Marshal(Config(rec))
	require.NoError(t, err)
	assert.JSONEq(t, `{"colors": {"primary": "red"}, "borderRadius": {}}`, string(data))
}

func TestConfigString(t *testing.T) {
	rec := &theme.Record{ID: "x", Name: "X", Tokens: theme.NewOrderedMap(theme.P("--color-primary", "red"))}
	got, err := ConfigString(rec)
	require.NoError(t, err)
	want := "// Tailwind config for X\n// Add to tailwind.config.js: theme.extend\n{\n  \"colors\": {\n    \"primary\": \"red\"\n  },\n  \"borderRadius\": {}\n}"
	assert.Equal(t, want, got)
}
