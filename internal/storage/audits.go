package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mirelle/gloss/internal/model"
)

// SaveAudit stores one AI audit run and returns its id.
func (s *SQLiteStorage) SaveAudit(ctx context.Context, audit *model.Audit) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateAudit(audit); err != nil {
		return 0, err
	}

	var findings any
	if len(audit.Findings) > 0 {
		encoded, err := json.Marshal(audit.Findings)
		if err != nil {
			return 0, fmt.Errorf("failed to encode findings: %w", err)
		}
		findings = string(encoded)
	}

	createdAt := audit.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audits (pricelist_id, model, summary, findings, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		audit.PricelistID, audit.Model, audit.Summary, findings, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get audit id: %w", err)
	}

	slog.Info("saved audit",
		"id", id,
		"pricelist_id", audit.PricelistID,
		"findings", len(audit.Findings))
	return id, nil
}

// GetLatestAudit returns the newest audit for a pricelist.
func (s *SQLiteStorage) GetLatestAudit(ctx context.Context, pricelistID int64) (*model.Audit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(pricelistID, "pricelistID"); err != nil {
		return nil, err
	}

	var audit model.Audit
	var modelName, summary, findings sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, pricelist_id, model, summary, findings, created_at
		 FROM audits WHERE pricelist_id = ?
		 ORDER BY id DESC LIMIT 1`, pricelistID).
		Scan(&audit.ID, &audit.PricelistID, &modelName, &summary, &findings, &audit.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no audits for pricelist %d", ErrNotFound, pricelistID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query audit: %w", err)
	}

	audit.Model = modelName.String
	audit.Summary = summary.String
	if findings.Valid && findings.String != "" {
		if err := json.Unmarshal([]byte(findings.String), &audit.Findings); err != nil {
			return nil, fmt.Errorf("failed to decode findings: %w", err)
		}
	}
	return &audit, nil
}
