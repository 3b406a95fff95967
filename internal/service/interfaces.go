// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mirelle/gloss/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Pricelist operations
	SavePricelist(ctx context.Context, pricelist *model.Pricelist) (int64, error)
	GetPricelist(ctx context.Context, id int64) (*model.Pricelist, error)
	GetLatestPricelist(ctx context.Context) (*model.Pricelist, error)
	ListPricelists(ctx context.Context) ([]model.Pricelist, error)
	ReplacePricelistStructure(ctx context.Context, pricelistID int64, categories []model.Category) error

	// Draft operations
	SaveDraft(ctx context.Context, draft *model.Draft) (int64, error)
	GetDraft(ctx context.Context, id int64) (*model.Draft, error)
	GetLatestDraft(ctx context.Context, pricelistID int64) (*model.Draft, error)
	ListDrafts(ctx context.Context, pricelistID int64) ([]model.Draft, error)
	UpdateDraftStructure(ctx context.Context, id int64, categories []model.Category) error
	PromoteDraft(ctx context.Context, id int64) error

	// Audit operations
	SaveAudit(ctx context.Context, audit *model.Audit) (int64, error)
	GetLatestAudit(ctx context.Context, pricelistID int64) (*model.Audit, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// OptimizeStats shows the results of an optimization run.
type OptimizeStats struct {
	Categories       int
	Services         int
	ProposedChanges  int
	Duration         time.Duration
	DraftID          int64
}
