package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mirelle/gloss/internal/config"
	"github.com/mirelle/gloss/internal/llm"
	"github.com/mirelle/gloss/internal/model"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [pricelist-id]",
		Short: "Audit pricelist copy and search keywords",
		Long: `Ask the configured AI provider to review the pricelist's service names
and descriptions for clarity and search visibility, and save the findings.
Without an ID, the most recently imported pricelist is audited.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAudit,
	}

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
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

	slog.Info("Auditing pricelist copy",
		"salon", pricelist.SalonName,
		"services", pricelist.ServiceCount(),
		"provider", llmCfg.Provider)

	bar := newSpinner(cmd, "Auditing descriptions...")
	start := time.Now()

	result, err := optimizer.AuditPricelist(ctx, pricelist)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	audit := &model.Audit{
		PricelistID: pricelist.ID,
		Model:       llmCfg.Model,
		Summary:     result.Summary,
		Findings:    result.Findings,
	}
	auditID, err := store.SaveAudit(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	slog.Info("✅ Audit saved",
		"audit_id", auditID,
		"findings", len(result.Findings),
		"duration", time.Since(start).Round(time.Millisecond))

	if result.Summary != "" {
		cmd.Println(result.Summary)
		cmd.Println()
	}
	for _, finding := range result.Findings {
		cmd.Printf("%s / %s\n", finding.Category, finding.Service)
		if finding.Rewrite != "" {
			cmd.Printf("  → %s\n", finding.Rewrite)
		}
		if len(finding.Keywords) > 0 {
			cmd.Printf("  keywords: %s\n", strings.Join(finding.Keywords, ", "))
		}
		if finding.Note != "" {
			cmd.Printf("  %s\n", finding.Note)
		}
	}

	return nil
}
