package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/mirelle/gloss/internal/model"
)

func createTestDraft(pricelistID int64) *model.Draft {
	return &model.Draft{
		PricelistID: pricelistID,
		Proposed: []model.Category{
			{
				Name: "Fryzjerstwo",
				Services: []model.Service{
					{Name: "Strzyżenie damskie", Price: "80 zł"},
					{Name: "Strzyżenie męskie", Price: "50 zł"},
					{Name: "Baleyage", Price: "250 zł"},
				},
			},
		},
		Changes: []model.ChangeRecord{
			{
				Type:         model.ChangeMergeCategories,
				Description:  "Połącz strzyżenie i koloryzację",
				FromCategory: "Koloryzacja",
				ToCategory:   "Strzyżenie",
				Services:     []string{"Baleyage"},
				Reason:       "Zbyt mała kategoria",
			},
		},
	}
}

func TestSaveAndGetDraft(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}

	id, err := store.SaveDraft(ctx, createTestDraft(pricelistID))
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	got, err := store.GetDraft(ctx, id)
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if got.Status != model.DraftStatusNew {
		t.Errorf("Status = %q, want %q", got.Status, model.DraftStatusNew)
	}
	if len(got.Proposed) != 1 || len(got.Proposed[0].Services) != 3 {
		t.Errorf("Proposed structure not round-tripped: %+v", got.Proposed)
	}
	if len(got.Changes) != 1 || got.Changes[0].Type != model.ChangeMergeCategories {
		t.Errorf("Change records not round-tripped: %+v", got.Changes)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestDraftValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		draft *model.Draft
		name  string
	}{
		{name: "nil draft", draft: nil},
		{name: "missing pricelist id", draft: &model.Draft{Proposed: []model.Category{{Name: "X"}}}},
		{name: "empty proposal", draft: &model.Draft{PricelistID: 1}},
		{
			name: "unknown change type",
			draft: &model.Draft{
				PricelistID: 1,
				Proposed:    []model.Category{{Name: "X"}},
				Changes:     []model.ChangeRecord{{Type: "explode_category"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveDraft(ctx, tt.draft); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestGetLatestDraftAndList(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}

	firstID, err := store.SaveDraft(ctx, createTestDraft(pricelistID))
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	secondID, err := store.SaveDraft(ctx, createTestDraft(pricelistID))
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	latest, err := store.GetLatestDraft(ctx, pricelistID)
	if err != nil {
		t.Fatalf("GetLatestDraft failed: %v", err)
	}
	if latest.ID != secondID {
		t.Errorf("Latest draft = %d, want %d", latest.ID, secondID)
	}

	drafts, err := store.ListDrafts(ctx, pricelistID)
	if err != nil {
		t.Fatalf("ListDrafts failed: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(drafts))
	}
	if drafts[0].ID != secondID || drafts[1].ID != firstID {
		t.Errorf("Drafts not newest-first: %d, %d", drafts[0].ID, drafts[1].ID)
	}
}

func TestUpdateDraftStructure(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}
	id, err := store.SaveDraft(ctx, createTestDraft(pricelistID))
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	edited := []model.Category{
		{Name: "Nowa", Services: []model.Service{{Name: "Usługa", Price: "10 zł"}}},
	}
	if err := store.UpdateDraftStructure(ctx, id, edited); err != nil {
		t.Fatalf("UpdateDraftStructure failed: %v", err)
	}

	got, err := store.GetDraft(ctx, id)
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if got.Status != model.DraftStatusEdited {
		t.Errorf("Status = %q, want %q", got.Status, model.DraftStatusEdited)
	}
	if len(got.Proposed) != 1 || got.Proposed[0].Name != "Nowa" {
		t.Errorf("Structure not updated: %+v", got.Proposed)
	}

	if err := store.UpdateDraftStructure(ctx, 999, edited); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPromoteDraft(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}
	id, err := store.SaveDraft(ctx, createTestDraft(pricelistID))
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	if err := store.PromoteDraft(ctx, id); err != nil {
		t.Fatalf("PromoteDraft failed: %v", err)
	}

	pricelist, err := store.GetPricelist(ctx, pricelistID)
	if err != nil {
		t.Fatalf("GetPricelist failed: %v", err)
	}
	if len(pricelist.Categories) != 1 || pricelist.Categories[0].Name != "Fryzjerstwo" {
		t.Errorf("Promotion did not replace structure: %+v", pricelist.Categories)
	}
	if len(pricelist.Categories[0].Services) != 3 {
		t.Errorf("Expected 3 services after promotion, got %d", len(pricelist.Categories[0].Services))
	}

	draft, err := store.GetDraft(ctx, id)
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if draft.Status != model.DraftStatusPromoted {
		t.Errorf("Status = %q, want %q", draft.Status, model.DraftStatusPromoted)
	}

	// Promoting twice is an error.
	if err := store.PromoteDraft(ctx, id); err == nil {
		t.Error("Expected error promoting an already promoted draft")
	}

	// Promoted drafts reject structure updates.
	if err := store.UpdateDraftStructure(ctx, id, pricelist.Categories); err == nil {
		t.Error("Expected error updating a promoted draft")
	}
}

func TestSaveAndGetAudit(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}

	audit := &model.Audit{
		PricelistID: pricelistID,
		Model:       "claude-3-sonnet-20240229",
		Summary:     "Opisy usług są zbyt krótkie",
		Findings: []model.AuditFinding{
			{
				Category: "Strzyżenie",
				Service:  "Strzyżenie damskie",
				Rewrite:  "Profesjonalne strzyżenie z konsultacją i stylizacją",
				Keywords: []string{"fryzjer damski", "strzyżenie warszawa"},
			},
		},
	}

	if _, err := store.SaveAudit(ctx, audit); err != nil {
		t.Fatalf("SaveAudit failed: %v", err)
	}

	got, err := store.GetLatestAudit(ctx, pricelistID)
	if err != nil {
		t.Fatalf("GetLatestAudit failed: %v", err)
	}
	if got.Summary != audit.Summary {
		t.Errorf("Summary = %q", got.Summary)
	}
	if len(got.Findings) != 1 || len(got.Findings[0].Keywords) != 2 {
		t.Errorf("Findings not round-tripped: %+v", got.Findings)
	}

	if _, err := store.GetLatestAudit(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTransactionalEditorSave(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	pricelistID, err := store.SavePricelist(ctx, createTestPricelist())
	if err != nil {
		t.Fatalf("SavePricelist failed: %v", err)
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}

	edited := []model.Category{
		{Name: "Edytowana", Services: []model.Service{{Name: "Usługa", Price: "1 zł"}}},
	}
	if err := tx.ReplacePricelistStructure(ctx, pricelistID, edited); err != nil {
		t.Fatalf("ReplacePricelistStructure in tx failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	got, err := store.GetPricelist(ctx, pricelistID)
	if err != nil {
		t.Fatalf("GetPricelist failed: %v", err)
	}
	if len(got.Categories) != 2 {
		t.Errorf("Rollback did not restore structure: %d categories", len(got.Categories))
	}
}
