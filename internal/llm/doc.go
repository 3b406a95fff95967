// Package llm provides language model interfaces for pricelist
// optimization. It supports multiple LLM providers including OpenAI and
// Anthropic, with features like retry logic, rate limiting, and response
// caching.
package llm
