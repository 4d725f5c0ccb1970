package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	PostgresURL string
	JWTSecret   string

	LogLevel  string
	LogFormat string

	Generation GenerationConfig
	Enrichment EnrichmentConfig
}

type GenerationConfig struct {
	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

// APIKey returns the credential of the configured provider.
func (g GenerationConfig) APIKey() string {
	if strings.EqualFold(g.Provider, "gemini") {
		return g.GeminiAPIKey
	}
	return g.OpenAIAPIKey
}

type EnrichmentConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GENERATION_PROVIDER", "openai")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GENERATION_TIMEOUT", "30s")

	v.SetDefault("PERPLEXITY_API_KEY", "")
	v.SetDefault("PERPLEXITY_MODEL", "sonar")
	v.SetDefault("PERPLEXITY_BASE_URL", "https://api.perplexity.ai")
	v.SetDefault("ENRICHMENT_TIMEOUT", "20s")
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return configFrom(v)
}

func configFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		PostgresURL: v.GetString("POSTGRES_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:   strings.ToLower(v.GetString("LOG_FORMAT")),
		Generation: GenerationConfig{
			Provider:     strings.ToLower(v.GetString("GENERATION_PROVIDER")),
			OpenAIAPIKey: v.GetString("OPENAI_API_KEY"),
			OpenAIModel:  v.GetString("OPENAI_MODEL"),
			OpenAIURL:    v.GetString("OPENAI_BASE_URL"),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			GeminiModel:  v.GetString("GEMINI_MODEL"),
			Timeout:      v.GetDuration("GENERATION_TIMEOUT"),
		},
		Enrichment: EnrichmentConfig{
			APIKey:  v.GetString("PERPLEXITY_API_KEY"),
			Model:   v.GetString("PERPLEXITY_MODEL"),
			BaseURL: v.GetString("PERPLEXITY_BASE_URL"),
			Timeout: v.GetDuration("ENRICHMENT_TIMEOUT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported GENERATION_PROVIDER %q, use 'openai' or 'gemini'", c.Generation.Provider)
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	if c.Enrichment.Timeout <= 0 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
