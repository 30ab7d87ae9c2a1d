package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "SERVICE_NAME", "LOG_LEVEL", "LOG_FILE",
	"ENRICH_PROVIDER", "HUGGINGFACE_API_KEY", "HUGGINGFACE_MODEL_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
	"ENRICH_CALL_TIMEOUT", "ENRICH_BUDGET", "ENRICH_RPM",
	"CORS_ALLOWED_ORIGINS", "CORS_ALLOW_CREDENTIALS", "TELEGRAM_BOT_TOKEN", "WEBHOOK_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "huggingface", cfg.Enrichment.Provider)
	assert.Equal(t, 10*time.Second, cfg.Enrichment.CallTimeout)
	assert.Equal(t, 15*time.Second, cfg.Enrichment.Budget)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Empty(t, cfg.Enrichment.HuggingFaceAPIKey)
	// the outbound quota is opt-in
	assert.Equal(t, 0, cfg.Enrichment.RequestsPerMinute)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-secret")
	t.Setenv("ENRICH_PROVIDER", "gemini")
	t.Setenv("ENRICH_CALL_TIMEOUT", "2s")
	t.Setenv("ENRICH_BUDGET", "3")
	t.Setenv("ENRICH_RPM", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "hf-secret", cfg.Enrichment.HuggingFaceAPIKey)
	assert.Equal(t, "gemini", cfg.Enrichment.Provider)
	assert.Equal(t, 2*time.Second, cfg.Enrichment.CallTimeout)
	assert.Equal(t, 3*time.Second, cfg.Enrichment.Budget)
	assert.Equal(t, 0, cfg.Enrichment.RequestsPerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
service_name: idea-scorer
log:
  level: debug
enrichment:
  provider: anthropic
  anthropic_model: claude-test
  call_timeout: 4s
  budget: 6s
`), 0o600))
	t.Setenv("ENRICH_BUDGET", "8s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "idea-scorer", cfg.ServiceName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "anthropic", cfg.Enrichment.Provider)
	assert.Equal(t, "claude-test", cfg.Enrichment.AnthropicModel)
	assert.Equal(t, 4*time.Second, cfg.Enrichment.CallTimeout)
	assert.Equal(t, 8*time.Second, cfg.Enrichment.Budget)
	// untouched keys keep their defaults
	assert.Equal(t, "gemini-2.5-flash", cfg.Enrichment.GeminiModel)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENRICH_BUDGET", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "ENRICH_BUDGET")
	})
	t.Run("bad bool", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORS_ALLOW_CREDENTIALS", "maybe")
		_, err := Load("")
		assert.ErrorContains(t, err, "CORS_ALLOW_CREDENTIALS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"call timeout not shorter than budget", func(c *Config) { c.Enrichment.CallTimeout = c.Enrichment.Budget }},
		{"zero budget", func(c *Config) { c.Enrichment.Budget = 0 }},
		{"unknown provider", func(c *Config) { c.Enrichment.Provider = "openai" }},
		{"negative rpm", func(c *Config) { c.Enrichment.RequestsPerMinute = -1 }},
		{"empty port", func(c *Config) { c.Port = " " }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
