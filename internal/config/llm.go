package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/llm"
)

// LoadLLMConfig loads optimizer configuration from Viper and
// environment variables.
func LoadLLMConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	if v := viper.GetString("llm.retry_delay"); v != "" {
		delay, err := time.ParseDuration(v)
		if err != nil {
			return llm.Config{}, fmt.Errorf("%w: invalid llm.retry_delay %q", common.ErrInvalidConfig, v)
		}
		cfg.RetryDelay = delay
	}
	if v := viper.GetString("llm.cache_ttl"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return llm.Config{}, fmt.Errorf("%w: invalid llm.cache_ttl %q", common.ErrInvalidConfig, v)
		}
		cfg.CacheTTL = ttl
	}
	cfg.RateLimit = viper.GetInt("llm.rate_limit")

	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}

	// Provider API keys fall back to the conventional env vars.
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.APIKey == "" {
		return llm.Config{}, fmt.Errorf("%w: no API key for provider %s", common.ErrMissingConfig, cfg.Provider)
	}

	return cfg, nil
}
