package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/editor"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/tui"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [pricelist-id]",
		Short: "Edit a pricelist's categories interactively",
		Long: `Open the interactive category editor. When the pricelist has an
unpromoted draft, the editor reconciles the draft's proposed structure
with the pricelist's services; otherwise you edit the live structure
directly. Saving writes the result back to the draft (creating one if
needed).

Without an ID, the most recently imported pricelist is edited.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().Bool("fresh", false, "Ignore any existing draft and edit the live structure")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	fresh, _ := cmd.Flags().GetBool("fresh")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	pricelist, err := resolvePricelist(cmd, args, store)
	if err != nil {
		return err
	}

	// Reconcile against the newest unpromoted draft, if any.
	var draft *model.Draft
	if !fresh {
		draft, err = store.GetLatestDraft(ctx, pricelist.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to load draft: %w", err)
		}
		if draft != nil && draft.Status == model.DraftStatusPromoted {
			draft = nil
		}
	}

	var session *editor.Session
	if draft != nil {
		slog.Info("Editing draft proposal", "draft_id", draft.ID, "status", draft.Status)
		session = editor.NewSession(pricelist.Categories, draft.Proposed, draft.Changes)
	} else {
		slog.Info("Editing live structure", "pricelist_id", pricelist.ID)
		session = editor.NewSession(pricelist.Categories, nil, nil)
	}

	saved, err := tui.Run(ctx, session, pricelist.SalonName)
	if err != nil {
		return err
	}
	if !saved {
		slog.Info("Editor closed without saving")
		return nil
	}

	categories := session.Commit()

	if draft != nil {
		if err := store.UpdateDraftStructure(ctx, draft.ID, categories); err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}
		slog.Info("✅ Draft updated", "draft_id", draft.ID, "categories", len(categories))
		return nil
	}

	newDraft := &model.Draft{
		PricelistID: pricelist.ID,
		Status:      model.DraftStatusEdited,
		Proposed:    categories,
		Changes:     session.Changes(),
	}
	draftID, err := store.SaveDraft(ctx, newDraft)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	slog.Info("✅ Draft saved", "draft_id", draftID, "categories", len(categories))
	cmd.Printf("Apply it with: gloss drafts promote %d\n", draftID)
	return nil
}
