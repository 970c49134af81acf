package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "OPENAI_API_URL", "OPENAI_MODEL", "OPENAI_API_KEY",
		"OPENAI_TEMPERATURE", "OPENAI_MAX_TOKENS", "OPENAI_TIMEOUT",
		"OLLAMA_BASE_URL", "OLLAMA_EMBED_MODEL", "HISTORY_DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "", cfg.LLM.APIKey)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "", cfg.Embedding.BaseURL)
	assert.Equal(t, "", cfg.History.Path)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_TEMPERATURE", "0.4")
	t.Setenv("OPENAI_MAX_TOKENS", "900")
	t.Setenv("OPENAI_TIMEOUT", "12s")
	t.Setenv("HISTORY_DB_PATH", "/tmp/history.db")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.4, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 900, cfg.LLM.MaxTokens)
	assert.Equal(t, 12*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "/tmp/history.db", cfg.History.Path)
}

func TestLoadConfigIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "lots")
	t.Setenv("OPENAI_TEMPERATURE", "warm")
	t.Setenv("OPENAI_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}
