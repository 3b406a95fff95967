package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a scraped pricelist export",
		Long: `Import a pricelist JSON export produced by the booking-platform scraper.

Examples:
  # Import a scraped export
  gloss import ~/Downloads/studio-bella.json

  # Preview without saving
  gloss import --dry-run ~/Downloads/studio-bella.json`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().String("salon", "", "Override the salon name")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	salon, _ := cmd.Flags().GetString("salon")

	pricelist, err := importer.ImportFile(args[0])
	if err != nil {
		return err
	}
	if salon != "" {
		pricelist.SalonName = salon
	}

	slog.Info("Parsed pricelist",
		"salon", pricelist.SalonName,
		"categories", len(pricelist.Categories),
		"services", pricelist.ServiceCount())

	if dryRun {
		for _, category := range pricelist.Categories {
			slog.Info("Category", "name", category.Name, "services", len(category.Services))
		}
		slog.Info("Dry run, nothing saved")
		return nil
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	id, err := store.SavePricelist(ctx, pricelist)
	if err != nil {
		return fmt.Errorf("failed to save pricelist: %w", err)
	}

	slog.Info("✅ Pricelist imported", "id", id, "salon", pricelist.SalonName)
	return nil
}
