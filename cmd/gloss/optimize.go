package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/config"
	"github.com/mirelle/gloss/internal/llm"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/service"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [pricelist-id]",
		Short: "Generate an AI-restructured draft of a pricelist",
		Long: `Send a pricelist's category structure to the configured AI provider and
save the proposed reorganization as a draft. Without an ID, the most
recently imported pricelist is optimized.

Review the draft with 'gloss drafts show', refine it with 'gloss edit',
and apply it with 'gloss drafts promote'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOptimize,
	}

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
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

	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return err
	}
	optimizer, err := llm.NewOptimizer(llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create optimizer: %w", err)
	}
	defer optimizer.Close()

	slog.Info("Optimizing pricelist structure",
		"salon", pricelist.SalonName,
		"categories", len(pricelist.Categories),
		"services", pricelist.ServiceCount(),
		"provider", llmCfg.Provider)

	bar := newSpinner(cmd, "Restructuring categories...")
	start := time.Now()

	proposal, err := optimizer.ProposeStructure(ctx, pricelist)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	draft := &model.Draft{
		PricelistID: pricelist.ID,
		Status:      model.DraftStatusNew,
		Proposed:    proposal.Categories,
		Changes:     proposal.Changes,
	}
	draftID, err := store.SaveDraft(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	stats := service.OptimizeStats{
		Categories:      len(proposal.Categories),
		Services:        pricelist.ServiceCount(),
		ProposedChanges: len(proposal.Changes),
		Duration:        time.Since(start),
		DraftID:         draftID,
	}
	slog.Info("✅ Draft saved",
		"draft_id", stats.DraftID,
		"proposed_categories", stats.Categories,
		"services", stats.Services,
		"changes", stats.ProposedChanges,
		"duration", stats.Duration.Round(time.Millisecond))

	for _, change := range proposal.Changes {
		cmd.Printf("  [%s] %s\n", change.Type, change.Description)
	}
	cmd.Printf("\nNext: gloss edit %d\n", pricelist.ID)

	return nil
}

// newSpinner builds an indeterminate progress spinner for API calls.
func newSpinner(cmd *cobra.Command, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]%s[reset]", description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(cmd.ErrOrStderr()); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
