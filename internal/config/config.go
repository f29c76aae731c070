package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"

	"novatrip/internal/itinerary"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
	defaultGeminiModel = "gemini-1.5-flash"
	defaultUserAgent   = "NovaTrip/1.0 (itinerary planner)"
)

// Config is the whole application configuration.
type Config struct {
	Port        string
	Env         string
	CORSOrigins []string
	Database    DatabaseConfig
	Log         LogConfig
	LLM         LLMConfig
	Geocoder    GeocoderConfig
	Itinerary   ItineraryConfig
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

type LogConfig struct {
	Level  string
	Format string
}

// LLMConfig configures the itinerary generator.
type LLMConfig struct {
	Provider          string
	APIKey            string
	BaseURL           string
	Model             string
	GeminiAPIKey      string
	MaxTokens         int
	FinishTokens      int
	RequestsPerSecond float64
	Timeout           time.Duration
}

type GeocoderConfig struct {
	URL               string
	UserAgent         string
	CacheTTL          time.Duration
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxConcurrency    int
}

// ItineraryConfig carries the business thresholds of the itinerary pipeline.
type ItineraryConfig struct {
	MaxChars int
	Rules    itinerary.Rules
	Currency string
	Catalog  []itinerary.ScalingItem
}

// Default returns a Config with every default applied.
func Default() Config {
	return Config{
		Port:        "8080",
		Env:         "development",
		CORSOrigins: []string{"*"},
		Log:         LogConfig{Level: "info", Format: "console"},
		LLM: LLMConfig{
			Provider:          ProviderGroq,
			BaseURL:           defaultGroqBaseURL,
			Model:             defaultGroqModel,
			MaxTokens:         4000,
			FinishTokens:      2000,
			RequestsPerSecond: 2,
			Timeout:           60 * time.Second,
		},
		Geocoder: GeocoderConfig{
			URL:               "https://nominatim.openstreetmap.org/search",
			UserAgent:         defaultUserAgent,
			CacheTTL:          24 * time.Hour,
			RequestsPerSecond: 1,
			Timeout:           8 * time.Second,
			MaxConcurrency:    4,
		},
		Itinerary: ItineraryConfig{
			MaxChars: itinerary.DefaultMaxChars,
			Rules:    itinerary.DefaultRules(),
			Currency: itinerary.DefaultCurrency,
			Catalog:  itinerary.DefaultCatalog,
		},
	}
}

// Load reads .env (when present), then the environment, then the optional
// YAML file named by NOVATRIP_CONFIG_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if path := os.Getenv("NOVATRIP_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// FromEnv applies environment variables over the defaults.
func FromEnv() Config {
	cfg := Default()

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}

	cfg.Database.URL = os.Getenv("POSTGRES_URL")
	cfg.Database.AutoMigrate = getBool("DB_AUTO_MIGRATE", false)

	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
	if cfg.Env == "production" {
		cfg.Log.Format = "json"
	}
	cfg.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", cfg.Log.Format))

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	switch cfg.LLM.Provider {
	case ProviderOpenAI:
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
		cfg.LLM.Model = getEnv("LLM_MODEL", "gpt-4o-mini")
	case ProviderGemini:
		cfg.LLM.Model = getEnv("LLM_MODEL", defaultGeminiModel)
	default:
		cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.BaseURL)
		cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	}
	cfg.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.MaxTokens = getInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.FinishTokens = getInt("LLM_FINISH_TOKENS", cfg.LLM.FinishTokens)
	cfg.LLM.RequestsPerSecond = getFloat("LLM_REQUESTS_PER_SECOND", cfg.LLM.RequestsPerSecond)

	cfg.Geocoder.URL = getEnv("GEOCODER_URL", cfg.Geocoder.URL)
	cfg.Geocoder.UserAgent = getEnv("GEOCODER_USER_AGENT", cfg.Geocoder.UserAgent)
	cfg.Geocoder.CacheTTL = getDuration("GEOCODE_CACHE_TTL", cfg.Geocoder.CacheTTL)

	cfg.Itinerary.MaxChars = getInt("MAX_ITINERARY_CHARS", cfg.Itinerary.MaxChars)
	cfg.Itinerary.Rules.MaxPlacesPerDay = getInt("MAX_PLACES_PER_DAY", cfg.Itinerary.Rules.MaxPlacesPerDay)
	cfg.Itinerary.Rules.MinDayContentChars = getInt("MIN_DAY_CONTENT_CHARS", cfg.Itinerary.Rules.MinDayContentChars)
	if f := getFloat("MIN_BUDGET_UTILIZATION", 0); f > 0 && f <= 1 {
		cfg.Itinerary.Rules.MinUtilization = f
	}

	return cfg
}

// EffectiveProvider falls back to the mock generator when the selected
// provider has no API key.
func (c LLMConfig) EffectiveProvider() string {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return ProviderMock
		}
		return ProviderGemini
	case ProviderMock:
		return ProviderMock
	default:
		if c.APIKey == "" {
			return ProviderMock
		}
		return c.Provider
	}
}

// Pipeline builds the itinerary pipeline from the configured thresholds.
func (c ItineraryConfig) Pipeline() itinerary.Pipeline {
	scaler := itinerary.DefaultScaler()
	scaler.MinUtilization = c.Rules.MinUtilization
	if c.Currency != "" {
		scaler.Currency = c.Currency
	}
	if len(c.Catalog) > 0 {
		scaler.Catalog = c.Catalog
	}
	return itinerary.NewPipeline(c.MaxChars, c.Rules, scaler)
}

// fileConfig is the YAML schema. Only itinerary settings can be overridden.
type fileConfig struct {
	Itinerary struct {
		MaxChars           int                     `yaml:"maxChars"`
		MaxPlacesPerDay    int                     `yaml:"maxPlacesPerDay"`
		MinDayContentChars int                     `yaml:"minDayContentChars"`
		MinUtilization     float64                 `yaml:"minUtilization"`
		Currency           string                  `yaml:"currency"`
		Catalog            []itinerary.ScalingItem `yaml:"catalog"`
	} `yaml:"itinerary"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	it := fc.Itinerary
	if it.MaxChars > 0 {
		c.Itinerary.MaxChars = it.MaxChars
	}
	if it.MaxPlacesPerDay > 0 {
		c.Itinerary.Rules.MaxPlacesPerDay = it.MaxPlacesPerDay
	}
	if it.MinDayContentChars > 0 {
		c.Itinerary.Rules.MinDayContentChars = it.MinDayContentChars
	}
	if it.MinUtilization > 0 && it.MinUtilization <= 1 {
		c.Itinerary.Rules.MinUtilization = it.MinUtilization
	}
	if it.Currency != "" {
		c.Itinerary.Currency = strings.ToUpper(it.Currency)
	}
	for _, item := range it.Catalog {
		if item.Cost <= 0 || strings.TrimSpace(item.Text) == "" {
			return fmt.Errorf("config file %s: catalog entries need text and a positive cost", path)
		}
	}
	if len(it.Catalog) > 0 {
		c.Itinerary.Catalog = it.Catalog
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "development"
	}
}
