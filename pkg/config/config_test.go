package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/flowchart-explainer/pkg/llm"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "AI_PROVIDER", "AI_GATEWAY_URL", "AI_GATEWAY_MODEL", "AI_GATEWAY_TEMPERATURE", "AI_GATEWAY_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, llm.ProviderLovable, cfg.Provider)
	assert.Equal(t, float32(0.7), cfg.Temperature)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", ":9090")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("AI_GATEWAY_URL", "http://localhost:1234/v1")
	t.Setenv("AI_GATEWAY_MODEL", "gpt-4o-mini")
	t.Setenv("AI_GATEWAY_TEMPERATURE", "0.2")
	t.Setenv("AI_GATEWAY_TIMEOUT", "15s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	s := cfg.LLMSettings()
	assert.Equal(t, "http://localhost:1234/v1", s.BaseURL)
	assert.Equal(t, "gpt-4o-mini", s.Model)
	require.NotNil(t, s.Temperature)
	assert.InDelta(t, 0.2, *s.Temperature, 1e-6)
	assert.Equal(t, 15*time.Second, s.Timeout)
}

func TestLoadKeepsZeroTemperature(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AI_GATEWAY_TEMPERATURE", "0")

	cfg, err := Load()

	require.NoError(t, err)
	s := cfg.LLMSettings()
	require.NotNil(t, s.Temperature)
	assert.Zero(t, *s.Temperature)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("AI_GATEWAY_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AI_GATEWAY_TIMEOUT", "-1s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("AI_GATEWAY_TIMEOUT", "")
	t.Setenv("AI_GATEWAY_TEMPERATURE", "hot")
	_, err = Load()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
