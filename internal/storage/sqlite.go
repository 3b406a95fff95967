package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{tx: tx, storage: s}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Transaction methods delegate to the main storage with the transaction.
func (t *sqliteTransaction) SavePricelist(ctx context.Context, pricelist *model.Pricelist) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validatePricelist(pricelist); err != nil {
		return 0, err
	}
	return t.storage.savePricelistTx(ctx, t.tx, pricelist)
}

func (t *sqliteTransaction) GetPricelist(ctx context.Context, id int64) (*model.Pricelist, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getPricelistTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) GetLatestPricelist(ctx context.Context) (*model.Pricelist, error) {
	return t.storage.GetLatestPricelist(ctx)
}

func (t *sqliteTransaction) ListPricelists(ctx context.Context) ([]model.Pricelist, error) {
	return t.storage.ListPricelists(ctx)
}

func (t *sqliteTransaction) ReplacePricelistStructure(ctx context.Context, pricelistID int64, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.replaceStructureTx(ctx, t.tx, pricelistID, categories)
}

func (t *sqliteTransaction) SaveDraft(ctx context.Context, draft *model.Draft) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDraft(draft); err != nil {
		return 0, err
	}
	return t.storage.saveDraftTx(ctx, t.tx, draft)
}

func (t *sqliteTransaction) GetDraft(ctx context.Context, id int64) (*model.Draft, error) {
	return t.storage.GetDraft(ctx, id)
}

func (t *sqliteTransaction) GetLatestDraft(ctx context.Context, pricelistID int64) (*model.Draft, error) {
	return t.storage.GetLatestDraft(ctx, pricelistID)
}

func (t *sqliteTransaction) ListDrafts(ctx context.Context, pricelistID int64) ([]model.Draft, error) {
	return t.storage.ListDrafts(ctx, pricelistID)
}

func (t *sqliteTransaction) UpdateDraftStructure(ctx context.Context, id int64, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.updateDraftStructureTx(ctx, t.tx, id, categories)
}

func (t *sqliteTransaction) PromoteDraft(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.promoteDraftTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) SaveAudit(ctx context.Context, audit *model.Audit) (int64, error) {
	return t.storage.SaveAudit(ctx, audit)
}

func (t *sqliteTransaction) GetLatestAudit(ctx context.Context, pricelistID int64) (*model.Audit, error) {
	return t.storage.GetLatestAudit(ctx, pricelistID)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
