// Package storage provides the data persistence layer for the gloss application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidID        = errors.New("id must be positive")
	ErrInvalidPricelist = errors.New("invalid pricelist")
	ErrInvalidDraft     = errors.New("invalid draft")
	ErrInvalidAudit     = errors.New("invalid audit")

	// ErrNotFound aliases the shared sentinel so callers can match it
	// without importing this package.
	ErrNotFound = common.ErrNotFound
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a database id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validatePricelist validates a pricelist before persistence.
func validatePricelist(pricelist *model.Pricelist) error {
	if pricelist == nil {
		return fmt.Errorf("%w: pricelist", ErrNilParameter)
	}
	if strings.TrimSpace(pricelist.SalonName) == "" {
		return fmt.Errorf("%w: missing salon name", ErrInvalidPricelist)
	}
	for i, cat := range pricelist.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("%w: category at index %d has no name", ErrInvalidPricelist, i)
		}
		for j, svc := range cat.Services {
			if strings.TrimSpace(svc.Name) == "" {
				return fmt.Errorf("%w: service %d in category %q has no name", ErrInvalidPricelist, j, cat.Name)
			}
		}
	}
	return nil
}

// validateDraft validates a draft before persistence.
func validateDraft(draft *model.Draft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft", ErrNilParameter)
	}
	if draft.PricelistID <= 0 {
		return fmt.Errorf("%w: missing pricelist id", ErrInvalidDraft)
	}
	if len(draft.Proposed) == 0 {
		return fmt.Errorf("%w: empty proposed structure", ErrInvalidDraft)
	}
	for _, change := range draft.Changes {
		if !change.Type.Valid() {
			return fmt.Errorf("%w: unknown change type %q", ErrInvalidDraft, change.Type)
		}
	}
	return nil
}

// validateAudit validates an audit before persistence.
func validateAudit(audit *model.Audit) error {
	if audit == nil {
		return fmt.Errorf("%w: audit", ErrNilParameter)
	}
	if audit.PricelistID <= 0 {
		return fmt.Errorf("%w: missing pricelist id", ErrInvalidAudit)
	}
	return nil
}
