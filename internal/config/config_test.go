package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	isolateConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "groq", cfg.General.DefaultBackend)
	assert.Equal(t, 220, cfg.General.MaxTokens)
	assert.Equal(t, 3, cfg.Session.HistoryExchanges)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "products.json", cfg.Catalog.LocalPath)
	assert.False(t, Exists())
}

func TestSaveThenLoadRoundtrip(t *testing.T) {
	isolateConfigDir(t)

	cfg := DefaultConfig()
	cfg.General.DefaultBackend = "gemini"
	cfg.API.GeminiAPIKey = "test-key"
	cfg.Session.TTLHours = 12
	cfg.Pricing.Overrides = map[string]BackendPricingOverride{
		"groq": {InputPerMTok: 0.10, OutputPerMTok: 0.20},
	}

	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", loaded.General.DefaultBackend)
	assert.Equal(t, "test-key", loaded.API.GeminiAPIKey)
	assert.Equal(t, 12*time.Hour, loaded.Session.TTL())
	assert.Equal(t, 0.20, loaded.Pricing.Overrides["groq"].OutputPerMTok)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolateConfigDir(t)

	path := filepath.Join(dir, "lirabot", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestAPIKeyEnvPrecedence(t *testing.T) {
	isolateConfigDir(t)
	t.Setenv("GROQ_API_KEY", "from-env")

	cfg := DefaultConfig()
	cfg.API.GroqAPIKey = "from-file"

	assert.Equal(t, "from-env", cfg.APIKey("groq"))

	t.Setenv("GROQ_API_KEY", "")
	assert.Equal(t, "from-file", cfg.APIKey("groq"))

	assert.Empty(t, cfg.APIKey("unknown"))
}

func TestRenderSystemPromptEmbedsProductData(t *testing.T) {
	prompt := RenderSystemPrompt(`[{"name": "Glow Serum"}]`)
	assert.Contains(t, prompt, "Glow Serum")
	assert.NotContains(t, prompt, "{product_data}")
}
