package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"card-manager/core/config"
	"card-manager/core/database"
	"card-manager/core/logger"
	"card-manager/core/rarity"
	"card-manager/core/reconcile"
	"card-manager/core/snapshot"
	"card-manager/core/source"
	"card-manager/core/storage"
	"card-manager/feature/cards"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the collaborators every command builds from configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	client storage.Client
	store  snapshot.Store
	source source.Source
	engine *reconcile.Engine
}

// needsDatabase reports whether the configured backends use the database.
func needsDatabase(cfg *config.Config) bool {
	return cfg.Snapshot.Backend == snapshot.BackendDatabase ||
		cfg.Source.Driver == source.DriverDatabase || cfg.Source.Driver == ""
}

// bootstrap loads configuration and wires the stores. The database is optional: when
// it cannot be reached the source is left nil and cards can only come from events.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg}
	a.engine = reconcile.NewEngine(cards.NewRegistry(), rarity.Evaluate, logg.Named("reconcile"))

	if needsDatabase(cfg) {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.db = conn
			logg.Info("Connected to market database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Snapshot.Backend == snapshot.BackendObject {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.client = client
	}

	if !cfg.Snapshot.IsValidBackend() {
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
	a.store, err = snapshot.Open(ctx, cfg.Snapshot, a.db, a.client, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	src, err := source.Open(cfg.Source, a.db)
	if err != nil {
		logg.Warn("Card data backend unavailable, cards can only be created by events", zap.Error(err))
	} else {
		a.source = source.NewCachedSource(src, source.DefaultFreshness)
	}
	return a, nil
}

// confirm prompts for confirmation unless assumeYes is set.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		fmt.Println("Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("%s Type 'yes' to confirm: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
