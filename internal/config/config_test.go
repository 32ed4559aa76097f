package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Zero(t, cfg.Server.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:7860", cfg.Forge.URL)
	assert.Zero(t, cfg.Forge.Timeout)
	assert.False(t, cfg.CacheEnable)
	assert.Equal(t, 24*time.Hour, cfg.RedisConfig.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_BASE_URL", "http://localhost:8000/v1")
	t.Setenv("FORGE_API_URL", "http://forge:7861")
	t.Setenv("FORGE_TIMEOUT", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:8000/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "http://forge:7861", cfg.Forge.URL)
	assert.Equal(t, 90*time.Second, cfg.Forge.Timeout)
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_PROVIDER", "bard")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bard")
}
