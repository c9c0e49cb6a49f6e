package cmd

import (
	"context"
	"fmt"
	"time"

	"card-manager/core/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd verifies that the configured backends are reachable and well formed.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the data backend and snapshot store",
	Long: `Verifies that every card data table exists with a symbol column, that the
snapshot store can be listed, and that the object storage bucket exists when used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		startTime := time.Now()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		l := a.logger
		failed := 0

		if a.db != nil {
			broken, err := source.NewDBSource(a.db, a.cfg.Source).Verify()
			switch {
			case err != nil:
				failed++
				l.Error("Card data tables could not be inspected", zap.Error(err))
			case len(broken) > 0:
				failed++
				l.Error("Card data tables without a symbol column", zap.Strings("tables", broken))
			default:
				l.Info("Card data tables OK")
			}
		} else {
			l.Warn("No database connection, card data tables not checked")
		}

		workspaces, err := a.store.Workspaces(ctx)
		if err != nil {
			failed++
			l.Error("Snapshot store could not be listed", zap.Error(err))
		} else {
			l.Info("Snapshot store OK",
				zap.String("backend", a.cfg.Snapshot.Backend),
				zap.Strings("workspaces", workspaces))
		}

		if a.client != nil {
			exists, err := a.client.BucketExists(ctx, a.cfg.Storage.Bucket)
			if err != nil || !exists {
				failed++
				l.Error("Snapshot bucket missing", zap.String("bucket", a.cfg.Storage.Bucket), zap.Error(err))
			} else {
				l.Info("Snapshot bucket OK", zap.String("bucket", a.cfg.Storage.Bucket))
			}
		}

		l.Info("Check finished", zap.Int("failed", failed), zap.Duration("duration", time.Since(startTime)))
		if failed > 0 {
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
