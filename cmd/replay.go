package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"card-manager/core/event"
	"card-manager/core/snapshot"
	"card-manager/feature/deck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	replayWorkspace string
	replayDryRun    bool
)

// replayCmd applies a file of events to a workspace.
var replayCmd = &cobra.Command{
	Use:   "replay <events.yaml|events.json>",
	Short: "Apply a file of events to a workspace",
	Long: `Loads the workspace, applies every event of the file in order through the
reconciliation engine and saves the result. Files are YAML or JSON lists of events:

  - symbol: AAPL
    reason: fetch
    type: price
    payload: {price: 150.25, changePercent: 1.2}
    timestamp: 1700000000000

Use --dry-run to report the outcome without saving.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayWorkspace, "workspace", "", "Workspace to replay into (defaults to deck.workspace)")
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "Apply events without saving the workspace")
	RootCmd.AddCommand(replayCmd)
}

// LoadEvents reads a YAML or JSON list of events. JSON is chosen by the .json extension.
func LoadEvents(path string) ([]event.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	var events []event.Event
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		err = dec.Decode(&events)
	} else {
		err = yaml.Unmarshal(raw, &events)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse events %s: %w", path, err)
	}
	return events, nil
}

// replayStats counts what a replay did.
type replayStats struct {
	Applied  int
	Changed  int
	Rejected int
}

// replay applies events to svc in order. Invalid events are counted and skipped.
func replay(ctx context.Context, svc *deck.Service, events []event.Event, logger *zap.Logger) replayStats {
	var stats replayStats
	for i, ev := range events {
		out, err := svc.Handle(ctx, ev)
		if err != nil {
			stats.Rejected++
			logger.Warn("Event rejected", zap.Int("index", i), zap.String("symbol", ev.Symbol), zap.Error(err))
			continue
		}
		stats.Applied++
		if out.Changed {
			stats.Changed++
		}
	}
	return stats
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	events, err := LoadEvents(args[0])
	if err != nil {
		return err
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	l := a.logger

	cfg := a.cfg.Deck
	if replayWorkspace != "" {
		cfg.Workspace = replayWorkspace
	}
	if err := snapshot.ValidateWorkspace(cfg.Workspace); err != nil {
		return err
	}

	// A dry run loads from the store but writes into memory only.
	var store snapshot.Store = a.store
	if replayDryRun {
		records, err := a.store.Load(ctx, cfg.Workspace)
		if err != nil {
			return err
		}
		mem := snapshot.NewMemoryStore()
		if err := mem.Save(ctx, cfg.Workspace, a.engine.RehydrateAll(records)); err != nil {
			return err
		}
		store = mem
	}

	svc := deck.NewService(a.engine, a.source, store, cfg, l)
	if err := svc.Load(ctx); err != nil {
		return err
	}
	before := len(svc.Cards())

	stats := replay(ctx, svc, events, l)
	for _, n := range svc.Notifications() {
		l.Info("Notification", zap.String("kind", string(n.Kind)), zap.String("message", n.Message))
	}
	l.Info("Replay finished",
		zap.String("workspace", cfg.Workspace),
		zap.Bool("dry_run", replayDryRun),
		zap.Int("events", len(events)),
		zap.Int("applied", stats.Applied),
		zap.Int("changed", stats.Changed),
		zap.Int("rejected", stats.Rejected),
		zap.Int("cards_before", before),
		zap.Int("cards_after", len(svc.Cards())))
	return nil
}
