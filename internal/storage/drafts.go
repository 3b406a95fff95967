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

// SaveDraft stores a proposed restructuring and returns its id.
func (s *SQLiteStorage) SaveDraft(ctx context.Context, draft *model.Draft) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDraft(draft); err != nil {
		return 0, err
	}
	return s.saveDraftTx(ctx, s.db, draft)
}

func (s *SQLiteStorage) saveDraftTx(ctx context.Context, tx dbtx, draft *model.Draft) (int64, error) {
	proposed, err := json.Marshal(draft.Proposed)
	if err != nil {
		return 0, fmt.Errorf("failed to encode proposed structure: %w", err)
	}

	var changes any
	if len(draft.Changes) > 0 {
		encoded, marshalErr := json.Marshal(draft.Changes)
		if marshalErr != nil {
			return 0, fmt.Errorf("failed to encode change records: %w", marshalErr)
		}
		changes = string(encoded)
	}

	status := draft.Status
	if status == "" {
		status = model.DraftStatusNew
	}
	createdAt := draft.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO drafts (pricelist_id, status, proposed, changes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		draft.PricelistID, string(status), string(proposed), changes, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert draft: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get draft id: %w", err)
	}

	slog.Info("saved draft",
		"id", id,
		"pricelist_id", draft.PricelistID,
		"categories", len(draft.Proposed),
		"changes", len(draft.Changes))
	return id, nil
}

// GetDraft returns one draft by id.
func (s *SQLiteStorage) GetDraft(ctx context.Context, id int64) (*model.Draft, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, pricelist_id, status, proposed, changes, created_at
		 FROM drafts WHERE id = ?`, id)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: draft %d", ErrNotFound, id)
	}
	return draft, err
}

// GetLatestDraft returns the newest draft for a pricelist.
func (s *SQLiteStorage) GetLatestDraft(ctx context.Context, pricelistID int64) (*model.Draft, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(pricelistID, "pricelistID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, pricelist_id, status, proposed, changes, created_at
		 FROM drafts WHERE pricelist_id = ?
		 ORDER BY id DESC LIMIT 1`, pricelistID)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no drafts for pricelist %d", ErrNotFound, pricelistID)
	}
	return draft, err
}

// ListDrafts returns all drafts for a pricelist, newest first.
func (s *SQLiteStorage) ListDrafts(ctx context.Context, pricelistID int64) ([]model.Draft, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(pricelistID, "pricelistID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pricelist_id, status, proposed, changes, created_at
		 FROM drafts WHERE pricelist_id = ?
		 ORDER BY id DESC`, pricelistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.Draft
	for rows.Next() {
		draft, scanErr := scanDraft(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		drafts = append(drafts, *draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drafts: %w", err)
	}
	return drafts, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*model.Draft, error) {
	var draft model.Draft
	var status, proposed string
	var changes sql.NullString
	if err := row.Scan(&draft.ID, &draft.PricelistID, &status, &proposed, &changes, &draft.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan draft: %w", err)
	}
	draft.Status = model.DraftStatus(status)

	if err := json.Unmarshal([]byte(proposed), &draft.Proposed); err != nil {
		return nil, fmt.Errorf("failed to decode proposed structure: %w", err)
	}
	if changes.Valid && changes.String != "" {
		if err := json.Unmarshal([]byte(changes.String), &draft.Changes); err != nil {
			return nil, fmt.Errorf("failed to decode change records: %w", err)
		}
	}
	return &draft, nil
}

// UpdateDraftStructure replaces a draft's proposed structure after the
// user edited it, marking the draft as edited.
func (s *SQLiteStorage) UpdateDraftStructure(ctx context.Context, id int64, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	return s.updateDraftStructureTx(ctx, s.db, id, categories)
}

func (s *SQLiteStorage) updateDraftStructureTx(ctx context.Context, tx dbtx, id int64, categories []model.Category) error {
	proposed, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode proposed structure: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE drafts SET proposed = ?, status = ? WHERE id = ? AND status != ?`,
		string(proposed), string(model.DraftStatusEdited), id, string(model.DraftStatusPromoted))
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check draft update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: draft %d (or already promoted)", ErrNotFound, id)
	}
	return nil
}

// PromoteDraft replaces the live pricelist structure with the draft's
// proposed structure and marks the draft promoted, atomically.
func (s *SQLiteStorage) PromoteDraft(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.promoteDraftTx(ctx, tx, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit promotion: %w", err)
	}

	slog.Info("promoted draft", "id", id)
	return nil
}

func (s *SQLiteStorage) promoteDraftTx(ctx context.Context, tx dbtx, id int64) error {
	row := tx.QueryRowContext(ctx,
		`SELECT id, pricelist_id, status, proposed, changes, created_at
		 FROM drafts WHERE id = ?`, id)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: draft %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	if draft.Status == model.DraftStatusPromoted {
		return fmt.Errorf("draft %d is already promoted", id)
	}

	if err := s.replaceStructureTx(ctx, tx, draft.PricelistID, draft.Proposed); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE drafts SET status = ? WHERE id = ?`,
		string(model.DraftStatusPromoted), id); err != nil {
		return fmt.Errorf("failed to mark draft promoted: %w", err)
	}
	return nil
}
