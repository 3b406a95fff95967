package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
)

// cleanMarkdownWrapper strips a ```json ... ``` (or plain ```) fence
// that models often wrap JSON responses in.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// parseProposal decodes a proposal response body into categories and
// change records. Unknown change types are dropped with the record
// rather than failing the whole proposal.
func parseProposal(content string) (ProposalResponse, error) {
	content = cleanMarkdownWrapper(content)

	var jsonResp struct {
		Categories []model.Category     `json:"categories"`
		Changes    []model.ChangeRecord `json:"changes"`
	}
	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ProposalResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(jsonResp.Categories) == 0 {
		return ProposalResponse{}, common.ErrNoProposal
	}

	changes := make([]model.ChangeRecord, 0, len(jsonResp.Changes))
	for _, change := range jsonResp.Changes {
		if change.Type.Valid() {
			changes = append(changes, change)
		}
	}

	return ProposalResponse{
		Categories: jsonResp.Categories,
		Changes:    changes,
	}, nil
}

// parseAudit decodes an audit response body.
func parseAudit(content string) (AuditResponse, error) {
	content = cleanMarkdownWrapper(content)

	var jsonResp struct {
		Summary  string               `json:"summary"`
		Findings []model.AuditFinding `json:"findings"`
	}
	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return AuditResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.Summary == "" && len(jsonResp.Findings) == 0 {
		return AuditResponse{}, fmt.Errorf("empty audit response")
	}

	return AuditResponse{
		Summary:  jsonResp.Summary,
		Findings: jsonResp.Findings,
	}, nil
}
