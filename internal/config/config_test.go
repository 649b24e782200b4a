package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, theme.ProfileDaisy, cfg.ThemeProfile())
	assert.True(t, cfg.IncludeBuiltin)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
profile: tailwind
themes_dir: /srv/themes
daemon:
  port: 6000
  rate_limit:
    rps: 5
    burst: 10
history:
  enabled: true
  path: /tmp/history.db
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, theme.ProfileTailwind, cfg.ThemeProfile())
	assert.Equal(t, "/srv/themes", cfg.ThemesDir)
	assert.Equal(t, 6000, cfg.Daemon.Port)
	assert.Equal(t, "127.0.0.1", cfg.Daemon.Host, "unset keys keep defaults")
	assert.Equal(t, 5.0, cfg.Daemon.RateLimit.RPS)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, path, cfg.File)

	lc := cfg.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.EqualValues(t, "json", lc.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "profile: tailwind\n")
	t.Setenv("VIBEUI_PROFILE", "daisy")
	t.Setenv("VIBEUI_DAEMON_PORT", "7001")
	t.Setenv("VIBEUI_THEMES_DIR", "/env/themes")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "daisy", cfg.Profile)
	assert.Equal(t, 7001, cfg.Daemon.Port)
	assert.Equal(t, "/env/themes", cfg.ThemesDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"profile":    "profile: bootstrap\n",
		"port":       "daemon:\n  port: 70000\n",
		"burst":      "daemon:\n  rate_limit:\n    rps: 3\n    burst: 0\n",
		"history":    "history:\n  enabled: true\n  path: \"\"\n",
		"log level":  "logging:\n  level: chatty\n",
		"log format": "logging:\n  format: xml\n",
		"no source":  "include_builtin: false\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
