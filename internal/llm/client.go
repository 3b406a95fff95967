package llm

import (
	"context"

	"github.com/mirelle/gloss/internal/model"
)

// Client defines the interface for LLM providers.
type Client interface {
	ProposeStructure(ctx context.Context, prompt string) (ProposalResponse, error)
	AuditPricelist(ctx context.Context, prompt string) (AuditResponse, error)
}

// ProposalResponse contains the LLM's proposed category restructuring.
type ProposalResponse struct {
	Categories []model.Category
	Changes    []model.ChangeRecord
}

// AuditResponse contains the LLM's copy and SEO findings.
type AuditResponse struct {
	Summary  string
	Findings []model.AuditFinding
}
