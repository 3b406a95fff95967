package llm

import "time"

// Config contains configuration for the LLM optimizer.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int // Requests per minute
	Temperature float64
	MaxTokens   int
}
