package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/config"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [pricelist-id]",
		Short: "Export a pricelist to Google Sheets or CSV",
		Long: `Export a pricelist's category structure, together with its latest audit
findings when available. Without an ID, the most recently imported
pricelist is exported.

Examples:
  # Export to the configured Google Sheets spreadsheet
  gloss export

  # Export to a CSV file instead
  gloss export --format csv --output pricelist.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("format", "sheets", "Export format (sheets, csv)")
	cmd.Flags().StringP("output", "o", "", "Output file for CSV export")
	cmd.Flags().Bool("no-audit", false, "Skip audit findings")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	noAudit, _ := cmd.Flags().GetBool("no-audit")

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

	var audit *model.Audit
	if !noAudit {
		audit, err = store.GetLatestAudit(ctx, pricelist.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("failed to load audit: %w", err)
		}
	}

	switch format {
	case "sheets":
		return exportToSheets(cmd, pricelist, audit)
	case "csv":
		return exportToCSV(cmd, pricelist, output)
	default:
		return fmt.Errorf("unknown export format %q (sheets, csv)", format)
	}
}

func exportToSheets(cmd *cobra.Command, pricelist *model.Pricelist, audit *model.Audit) error {
	sheetsCfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}

	writer, err := sheets.NewWriter(cmd.Context(), *sheetsCfg, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(cmd.Context(), pricelist, audit); err != nil {
		return fmt.Errorf("failed to export to sheets: %w", err)
	}

	slog.Info("✅ Exported to Google Sheets", "salon", pricelist.SalonName)
	return nil
}

func exportToCSV(cmd *cobra.Command, pricelist *model.Pricelist, output string) error {
	out := cmd.OutOrStdout()
	if output != "" {
		file, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"Category", "Service", "Description", "Price", "Duration", "Tags"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, category := range pricelist.Categories {
		for _, svc := range category.Services {
			record := []string{
				category.Name,
				svc.Name,
				svc.Description,
				svc.Price,
				svc.Duration,
				strings.Join(svc.Tags, "; "),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if output != "" {
		slog.Info("✅ Exported to CSV", "file", output, "services", pricelist.ServiceCount())
	}
	return nil
}
