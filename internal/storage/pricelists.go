package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
)

// dbtx abstracts *sql.DB and *sql.Tx so query helpers can serve both
// direct calls and transaction-scoped calls.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SavePricelist stores a pricelist with its full category structure and
// returns the new pricelist id.
func (s *SQLiteStorage) SavePricelist(ctx context.Context, pricelist *model.Pricelist) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validatePricelist(pricelist); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	id, err := s.savePricelistTx(ctx, tx, pricelist)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit pricelist: %w", err)
	}

	slog.Info("saved pricelist",
		"id", id,
		"salon", pricelist.SalonName,
		"categories", len(pricelist.Categories),
		"services", pricelist.ServiceCount())
	return id, nil
}

func (s *SQLiteStorage) savePricelistTx(ctx context.Context, tx dbtx, pricelist *model.Pricelist) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO pricelists (salon_name, source_url, imported_at) VALUES (?, ?, ?)`,
		pricelist.SalonName, pricelist.SourceURL, pricelist.ImportedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert pricelist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get pricelist id: %w", err)
	}

	if err := insertStructure(ctx, tx, id, pricelist.Categories); err != nil {
		return 0, err
	}
	return id, nil
}

// insertStructure writes categories and services preserving list order
// via position columns.
func insertStructure(ctx context.Context, tx dbtx, pricelistID int64, categories []model.Category) error {
	for i, cat := range categories {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO categories (pricelist_id, name, position) VALUES (?, ?, ?)`,
			pricelistID, cat.Name, i)
		if err != nil {
			return fmt.Errorf("failed to insert category %q: %w", cat.Name, err)
		}
		categoryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get category id: %w", err)
		}

		for j, svc := range cat.Services {
			var tags any
			if len(svc.Tags) > 0 {
				encoded, marshalErr := json.Marshal(svc.Tags)
				if marshalErr != nil {
					return fmt.Errorf("failed to encode tags for %q: %w", svc.Name, marshalErr)
				}
				tags = string(encoded)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO services (category_id, name, description, price, duration, tags, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				categoryID, svc.Name, svc.Description, svc.Price, svc.Duration, tags, j)
			if err != nil {
				return fmt.Errorf("failed to insert service %q: %w", svc.Name, err)
			}
		}
	}
	return nil
}

// GetPricelist returns one pricelist with its full category structure.
func (s *SQLiteStorage) GetPricelist(ctx context.Context, id int64) (*model.Pricelist, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.getPricelistTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getPricelistTx(ctx context.Context, tx dbtx, id int64) (*model.Pricelist, error) {
	var pricelist model.Pricelist
	err := tx.QueryRowContext(ctx,
		`SELECT id, salon_name, source_url, imported_at FROM pricelists WHERE id = ?`, id).
		Scan(&pricelist.ID, &pricelist.SalonName, &pricelist.SourceURL, &pricelist.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: pricelist %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pricelist: %w", err)
	}

	categories, err := loadStructure(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	pricelist.Categories = categories
	return &pricelist, nil
}

func loadStructure(ctx context.Context, tx dbtx, pricelistID int64) ([]model.Category, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT c.id, c.name FROM categories c
		 WHERE c.pricelist_id = ?
		 ORDER BY c.position`, pricelistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	var categoryIDs []int64
	for rows.Next() {
		var catID int64
		var cat model.Category
		if err := rows.Scan(&catID, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
		categoryIDs = append(categoryIDs, catID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	for i, catID := range categoryIDs {
		services, err := loadServices(ctx, tx, catID)
		if err != nil {
			return nil, err
		}
		categories[i].Services = services
	}
	return categories, nil
}

func loadServices(ctx context.Context, tx dbtx, categoryID int64) ([]model.Service, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT name, description, price, duration, tags FROM services
		 WHERE category_id = ?
		 ORDER BY position`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var svc model.Service
		var description, price, duration, tags sql.NullString
		if err := rows.Scan(&svc.Name, &description, &price, &duration, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		svc.Description = description.String
		svc.Price = price.String
		svc.Duration = duration.String
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &svc.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags for %q: %w", svc.Name, err)
			}
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	return services, nil
}

// GetLatestPricelist returns the most recently imported pricelist.
func (s *SQLiteStorage) GetLatestPricelist(ctx context.Context) (*model.Pricelist, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM pricelists ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no pricelists imported yet", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest pricelist: %w", err)
	}
	return s.getPricelistTx(ctx, s.db, id)
}

// ListPricelists returns all pricelists without their category
// structures, newest first.
func (s *SQLiteStorage) ListPricelists(ctx context.Context) ([]model.Pricelist, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, salon_name, source_url, imported_at FROM pricelists ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricelists: %w", err)
	}
	defer rows.Close()

	var pricelists []model.Pricelist
	for rows.Next() {
		var p model.Pricelist
		if err := rows.Scan(&p.ID, &p.SalonName, &p.SourceURL, &p.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pricelist: %w", err)
		}
		pricelists = append(pricelists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pricelists: %w", err)
	}

	slog.Debug("retrieved pricelists", "count", len(pricelists))
	return pricelists, nil
}

// ReplacePricelistStructure atomically swaps a pricelist's categories
// and services for the supplied structure. This is the save sink for
// the interactive editor.
func (s *SQLiteStorage) ReplacePricelistStructure(ctx context.Context, pricelistID int64, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(pricelistID, "pricelistID"); err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories", common.ErrInvalidSnapshot)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.replaceStructureTx(ctx, tx, pricelistID, categories); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit structure replacement: %w", err)
	}

	slog.Info("replaced pricelist structure",
		"pricelist_id", pricelistID,
		"categories", len(categories),
		"services", model.ServiceCount(categories))
	return nil
}

func (s *SQLiteStorage) replaceStructureTx(ctx context.Context, tx dbtx, pricelistID int64, categories []model.Category) error {
	var exists int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM pricelists WHERE id = ?`, pricelistID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: pricelist %d", ErrNotFound, pricelistID)
	}
	if err != nil {
		return fmt.Errorf("failed to check pricelist: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE pricelist_id = ?`, pricelistID); err != nil {
		return fmt.Errorf("failed to clear old structure: %w", err)
	}

	return insertStructure(ctx, tx, pricelistID, categories)
}
