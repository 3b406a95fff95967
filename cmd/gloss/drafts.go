package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

func draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage optimization drafts",
	}

	cmd.AddCommand(draftsListCmd())
	cmd.AddCommand(draftsShowCmd())
	cmd.AddCommand(draftsPromoteCmd())

	return cmd
}

func draftsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [pricelist-id]",
		Short: "List drafts for a pricelist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			drafts, err := store.ListDrafts(ctx, pricelist.ID)
			if err != nil {
				return fmt.Errorf("failed to list drafts: %w", err)
			}

			if len(drafts) == 0 {
				cmd.Println("No drafts yet. Run 'gloss optimize' or 'gloss edit' first.")
				return nil
			}

			cmd.Printf("%-6s %-10s %-12s %-10s %-20s\n",
				"ID", "STATUS", "CATEGORIES", "CHANGES", "CREATED")
			for _, d := range drafts {
				cmd.Printf("%-6d %-10s %-12d %-10d %-20s\n",
					d.ID, d.Status, len(d.Proposed), len(d.Changes),
					d.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func draftsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [draft-id]",
		Short: "Show a draft's proposed structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid draft id %q", args[0])
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			draft, err := store.GetDraft(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load draft %d: %w", id, err)
			}

			cmd.Printf("Draft %d (%s) for pricelist %d — %d categories\n\n",
				draft.ID, draft.Status, draft.PricelistID, len(draft.Proposed))

			for _, category := range draft.Proposed {
				cmd.Printf("%s (%d)\n", category.Name, len(category.Services))
				for _, svc := range category.Services {
					cmd.Printf("  %s\n", svc.Name)
				}
			}

			if len(draft.Changes) > 0 {
				cmd.Println("\nProposed changes:")
				for _, change := range draft.Changes {
					cmd.Printf("  [%s] %s\n", change.Type, change.Description)
				}
			}
			return nil
		},
	}
}

func draftsPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [draft-id]",
		Short: "Apply a draft to its pricelist",
		Long: `Replace the pricelist's live category structure with the draft's
proposed structure. The replacement is atomic: either the whole new
structure lands or nothing changes. A promoted draft cannot be promoted
again or edited further.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid draft id %q", args[0])
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.PromoteDraft(ctx, id); err != nil {
				return fmt.Errorf("failed to promote draft %d: %w", id, err)
			}

			slog.Info("✅ Draft promoted", "draft_id", id)
			return nil
		},
	}
}
