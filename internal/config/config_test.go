package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2026, cfg.General.DefaultYear)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.False(t, Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultYear = 2024
	cfg.General.DataPath = "/data/budget.db"
	cfg.Assistant.APIKey = "test-key"
	cfg.Assistant.Model = "gemini-2.5-pro"
	cfg.Appearance.Theme = "nord"

	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGetAPIKeyPrefersEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.Assistant.APIKey = "file-key"
	assert.Equal(t, "env-key", GetAPIKey(cfg))

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "file-key", GetAPIKey(cfg))
}
