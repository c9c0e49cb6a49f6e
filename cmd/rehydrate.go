package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"card-manager/core/card"
	"card-manager/core/reconcile"
	"card-manager/core/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rehydrateWorkspace string
	rehydrateFile      string
	rehydrateAll       bool
	rehydratePrune     bool
	rehydrateJSON      bool
	rehydrateYes       bool
)

// rehydrateCmd rebuilds cards from stored snapshots and reports the result.
var rehydrateCmd = &cobra.Command{
	Use:   "rehydrate",
	Short: "Rebuild cards from a stored snapshot and report what loads",
	Long: `Reads a workspace snapshot, rebuilds every card through the registered
rehydrators and reports the cards that load and the records that are dropped.

Examples:
  # Report the configured workspace
  rehydrate

  # Report a snapshot file
  rehydrate --file backup.json

  # Report every stored workspace
  rehydrate --all

  # Rewrite a workspace without its unloadable records
  rehydrate --workspace team-a --prune --yes`,
	RunE: runRehydrate,
}

func init() {
	rehydrateCmd.Flags().StringVar(&rehydrateWorkspace, "workspace", "", "Workspace to load (defaults to deck.workspace)")
	rehydrateCmd.Flags().StringVar(&rehydrateFile, "file", "", "Read a snapshot file instead of the configured store")
	rehydrateCmd.Flags().BoolVar(&rehydrateAll, "all", false, "Report every stored workspace")
	rehydrateCmd.Flags().BoolVar(&rehydratePrune, "prune", false, "Write the rebuilt cards back, dropping unloadable records")
	rehydrateCmd.Flags().BoolVar(&rehydrateJSON, "json", false, "Print the rebuilt cards as JSON")
	rehydrateCmd.Flags().BoolVar(&rehydrateYes, "yes", false, "Auto-confirm --prune (non-interactive)")
	RootCmd.AddCommand(rehydrateCmd)
}

// rehydrateReport summarizes one workspace.
type rehydrateReport struct {
	Workspace string      `json:"workspace"`
	Records   int         `json:"records"`
	Cards     []card.Card `json:"cards"`
}

func (r rehydrateReport) Dropped() int {
	return r.Records - len(r.Cards)
}

func rehydrateRecords(engine *reconcile.Engine, workspace string, records []reconcile.Record) rehydrateReport {
	return rehydrateReport{Workspace: workspace, Records: len(records), Cards: engine.RehydrateAll(records)}
}

func runRehydrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	l := a.logger

	var reports []rehydrateReport
	switch {
	case rehydrateFile != "":
		f, err := os.Open(rehydrateFile)
		if err != nil {
			return fmt.Errorf("failed to open snapshot file: %w", err)
		}
		records, err := snapshot.Decode(f)
		f.Close()
		if err != nil {
			return err
		}
		reports = append(reports, rehydrateRecords(a.engine, rehydrateFile, records))

	default:
		workspaces := []string{a.cfg.Deck.Workspace}
		if rehydrateWorkspace != "" {
			workspaces = []string{rehydrateWorkspace}
		}
		if rehydrateAll {
			if workspaces, err = a.store.Workspaces(ctx); err != nil {
				return err
			}
		}
		for _, ws := range workspaces {
			records, err := a.store.Load(ctx, ws)
			if err != nil {
				return err
			}
			reports = append(reports, rehydrateRecords(a.engine, ws, records))
		}
	}

	if rehydrateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		l.Info("Workspace rehydrated",
			zap.String("workspace", r.Workspace),
			zap.Int("records", r.Records),
			zap.Int("cards", len(r.Cards)),
			zap.Int("dropped", r.Dropped()))
		for _, c := range r.Cards {
			headline := ""
			if c.Data != nil {
				headline = c.Data.Headline()
			}
			l.Info("Card",
				zap.String("symbol", c.Symbol),
				zap.String("type", string(c.Type)),
				zap.String("rarity", c.Rarity.String()),
				zap.String("headline", headline))
		}
	}

	if !rehydratePrune || rehydrateFile != "" {
		return nil
	}
	for _, r := range reports {
		if r.Dropped() == 0 {
			continue
		}
		prompt := fmt.Sprintf("Rewrite workspace %s without %d unloadable records?", r.Workspace, r.Dropped())
		if !confirm(prompt, rehydrateYes) {
			l.Info("Prune skipped", zap.String("workspace", r.Workspace))
			continue
		}
		if err := a.store.Save(ctx, r.Workspace, r.Cards); err != nil {
			return err
		}
		l.Info("Workspace pruned", zap.String("workspace", r.Workspace), zap.Int("dropped", r.Dropped()))
	}
	return nil
}
