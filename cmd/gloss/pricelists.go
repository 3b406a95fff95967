package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/model"
)

func pricelistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pricelists",
		Short: "Manage imported pricelists",
	}

	cmd.AddCommand(pricelistsListCmd())
	cmd.AddCommand(pricelistsShowCmd())

	return cmd
}

func pricelistsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported pricelists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			pricelists, err := store.ListPricelists(ctx)
			if err != nil {
				return fmt.Errorf("failed to list pricelists: %w", err)
			}

			if len(pricelists) == 0 {
				cmd.Println("No pricelists imported yet. Run 'gloss import' first.")
				return nil
			}

			cmd.Printf("%-6s %-30s %-20s\n", "ID", "SALON", "IMPORTED")
			for _, p := range pricelists {
				cmd.Printf("%-6d %-30s %-20s\n",
					p.ID, p.SalonName, p.ImportedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func pricelistsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a pricelist's category structure",
		Long:  "Show a pricelist's categories and services. Without an ID, shows the most recently imported pricelist.",
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

			printPricelist(cmd, pricelist)
			return nil
		},
	}
}

// resolvePricelist loads the pricelist named by the first positional
// argument, or the latest one when no argument is given.
func resolvePricelist(cmd *cobra.Command, args []string, store pricelistLoader) (*model.Pricelist, error) {
	ctx := cmd.Context()

	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pricelist id %q", args[0])
		}
		pricelist, err := store.GetPricelist(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricelist %d: %w", id, err)
		}
		return pricelist, nil
	}

	pricelist, err := store.GetLatestPricelist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest pricelist: %w", err)
	}
	return pricelist, nil
}

func printPricelist(cmd *cobra.Command, pricelist *model.Pricelist) {
	cmd.Printf("%s (id %d) — %d categories, %d services\n\n",
		pricelist.SalonName, pricelist.ID, len(pricelist.Categories), pricelist.ServiceCount())

	for _, category := range pricelist.Categories {
		cmd.Printf("%s (%d)\n", category.Name, len(category.Services))
		for _, svc := range category.Services {
			line := "  " + svc.Name
			if svc.Price != "" {
				line += "  " + svc.Price
			}
			if svc.Duration != "" {
				line += "  " + svc.Duration
			}
			cmd.Println(line)
		}
	}
}
