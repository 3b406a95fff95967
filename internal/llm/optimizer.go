package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/service"
)

// Optimizer orchestrates pricelist restructuring and copy audits through
// an LLM provider, with caching, rate limiting, and retry handling.
type Optimizer struct {
	client    Client
	cache     *responseCache
	limiter   *rateLimiter
	retryOpts service.RetryOptions
}

// NewOptimizer creates an optimizer for the configured provider.
func NewOptimizer(cfg Config) (*Optimizer, error) {
	var client Client
	var err error

	switch cfg.Provider {
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic", "":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts <= 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay <= 0 {
		retryOpts.InitialDelay = 1 * time.Second
	}

	return &Optimizer{
		client:    client,
		cache:     newResponseCache(cfg.CacheTTL),
		limiter:   newRateLimiter(cfg.RateLimit),
		retryOpts: retryOpts,
	}, nil
}

// ProposeStructure asks the model for a restructured category layout for
// the given pricelist. Responses are cached by prompt so repeated runs
// over an unchanged pricelist are free.
func (o *Optimizer) ProposeStructure(ctx context.Context, pricelist *model.Pricelist) (ProposalResponse, error) {
	prompt, err := buildProposalPrompt(pricelist)
	if err != nil {
		return ProposalResponse{}, err
	}

	key := cacheKey(prompt)
	if cached, ok := o.cache.getProposal(key); ok {
		slog.Debug("using cached proposal", "salon", pricelist.SalonName)
		return cached, nil
	}

	if err := o.limiter.wait(ctx); err != nil {
		return ProposalResponse{}, err
	}

	var resp ProposalResponse
	err = common.WithRetry(ctx, func() error {
		var callErr error
		resp, callErr = o.client.ProposeStructure(ctx, prompt)
		return callErr
	}, o.retryOpts)
	if err != nil {
		return ProposalResponse{}, fmt.Errorf("%w: %w", common.ErrOptimizerFailure, err)
	}

	o.cache.putProposal(key, resp)
	return resp, nil
}

// AuditPricelist asks the model for copywriting and search-visibility
// findings across the pricelist's service descriptions.
func (o *Optimizer) AuditPricelist(ctx context.Context, pricelist *model.Pricelist) (AuditResponse, error) {
	prompt, err := buildAuditPrompt(pricelist)
	if err != nil {
		return AuditResponse{}, err
	}

	key := cacheKey(prompt)
	if cached, ok := o.cache.getAudit(key); ok {
		slog.Debug("using cached audit", "salon", pricelist.SalonName)
		return cached, nil
	}

	if err := o.limiter.wait(ctx); err != nil {
		return AuditResponse{}, err
	}

	var resp AuditResponse
	err = common.WithRetry(ctx, func() error {
		var callErr error
		resp, callErr = o.client.AuditPricelist(ctx, prompt)
		return callErr
	}, o.retryOpts)
	if err != nil {
		return AuditResponse{}, fmt.Errorf("%w: %w", common.ErrOptimizerFailure, err)
	}

	o.cache.putAudit(key, resp)
	return resp, nil
}

// Close releases the optimizer's background resources.
func (o *Optimizer) Close() {
	o.cache.Close()
	o.limiter.Close()
}

// buildProposalPrompt serializes the pricelist into the restructuring prompt.
func buildProposalPrompt(pricelist *model.Pricelist) (string, error) {
	if pricelist == nil || len(pricelist.Categories) == 0 {
		return "", common.ErrEmptyPricelist
	}

	structure, err := json.MarshalIndent(pricelist.Categories, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize pricelist: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Restructure the following salon pricelist into clear, customer-friendly categories.\n\n")
	if pricelist.SalonName != "" {
		fmt.Fprintf(&sb, "Salon: %s\n", pricelist.SalonName)
	}
	fmt.Fprintf(&sb, "Categories: %d, services: %d\n\n", len(pricelist.Categories), pricelist.ServiceCount())
	sb.WriteString("Rules:\n")
	sb.WriteString("- Keep every service; never invent or drop services\n")
	sb.WriteString("- Reference services by their exact original names\n")
	sb.WriteString("- Group related services; split categories that mix unrelated work\n")
	sb.WriteString("- Keep the pricelist's original language\n\n")
	sb.WriteString("Current structure:\n")
	sb.Write(structure)
	return sb.String(), nil
}

// buildAuditPrompt serializes the pricelist into the copy-audit prompt.
func buildAuditPrompt(pricelist *model.Pricelist) (string, error) {
	if pricelist == nil || len(pricelist.Categories) == 0 {
		return "", common.ErrEmptyPricelist
	}

	structure, err := json.MarshalIndent(pricelist.Categories, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize pricelist: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Audit the service names and descriptions in this salon pricelist.\n\n")
	if pricelist.SalonName != "" {
		fmt.Fprintf(&sb, "Salon: %s\n", pricelist.SalonName)
	}
	sb.WriteString("For each weak entry, suggest a clearer rewrite and the search keywords it should carry. ")
	sb.WriteString("Keep the pricelist's original language. Skip entries that are already strong.\n\n")
	sb.WriteString("Pricelist:\n")
	sb.Write(structure)
	return sb.String(), nil
}
