package model

import "time"

// AuditFinding is one copy or SEO suggestion for a category or a single
// service within it. Service is empty for category-level findings.
type AuditFinding struct {
	Category string   `json:"category"`
	Service  string   `json:"service,omitempty"`
	Rewrite  string   `json:"rewrite,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Audit is the result of one AI audit run over a pricelist.
type Audit struct {
	CreatedAt   time.Time
	Model       string
	Summary     string
	Findings    []AuditFinding
	ID          int64
	PricelistID int64
}
