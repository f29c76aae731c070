package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novatrip/internal/itinerary"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "POSTGRES_URL", "DB_AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT",
		"LLM_PROVIDER", "GROQ_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "LLM_MODEL",
		"GEMINI_API_KEY", "LLM_MAX_TOKENS", "LLM_FINISH_TOKENS", "LLM_REQUESTS_PER_SECOND",
		"GEOCODER_URL", "GEOCODER_USER_AGENT", "GEOCODE_CACHE_TTL", "MAX_ITINERARY_CHARS",
		"MAX_PLACES_PER_DAY", "MIN_DAY_CONTENT_CHARS", "MIN_BUDGET_UTILIZATION", "NOVATRIP_CONFIG_FILE", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, 2000, cfg.LLM.FinishTokens)
	assert.Equal(t, ProviderMock, cfg.LLM.EffectiveProvider())
	assert.Equal(t, 24*time.Hour, cfg.Geocoder.CacheTTL)
	assert.Equal(t, itinerary.DefaultRules(), cfg.Itinerary.Rules)
	assert.Equal(t, 100000, cfg.Itinerary.MaxChars)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("MAX_PLACES_PER_DAY", "7")
	t.Setenv("MIN_BUDGET_UTILIZATION", "0.6")
	t.Setenv("GEOCODE_CACHE_TTL", "2h")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg := FromEnv()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, ProviderGroq, cfg.LLM.EffectiveProvider())
	assert.Equal(t, 7, cfg.Itinerary.Rules.MaxPlacesPerDay)
	assert.Equal(t, 0.6, cfg.Itinerary.Rules.MinUtilization)
	assert.Equal(t, 2*time.Hour, cfg.Geocoder.CacheTTL)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_ProviderSelection(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini")
	assert.Equal(t, ProviderMock, FromEnv().LLM.EffectiveProvider())

	t.Setenv("GEMINI_API_KEY", "key")
	cfg := FromEnv()
	assert.Equal(t, ProviderGemini, cfg.LLM.EffectiveProvider())
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)

	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg = FromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.LLM.EffectiveProvider())
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "novatrip.yaml")
	body := `itinerary:
  maxPlacesPerDay: 4
  minUtilization: 0.8
  currency: usd
  catalog:
    - text: Sunset cruise
      cost: 300
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("NOVATRIP_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Itinerary.Rules.MaxPlacesPerDay)
	assert.Equal(t, 0.8, cfg.Itinerary.Rules.MinUtilization)
	assert.Equal(t, "USD", cfg.Itinerary.Currency)
	assert.Equal(t, []itinerary.ScalingItem{{Text: "Sunset cruise", Cost: 300}}, cfg.Itinerary.Catalog)

	p := cfg.Itinerary.Pipeline()
	assert.Equal(t, 0.8, p.Scaler.MinUtilization)
	assert.Equal(t, "USD", p.Scaler.Currency)
}

func TestLoad_BadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("itinerary:\n  catalog:\n    - text: ''\n      cost: 0\n"), 0o600))
	t.Setenv("NOVATRIP_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("NOVATRIP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
