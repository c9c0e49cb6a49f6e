package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"card-manager/core/loader"
	"card-manager/core/logger"
	"card-manager/core/middleware/auth"
	"card-manager/core/middleware/rayid"
	"card-manager/feature/deck"
	"card-manager/feature/feed"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "card-manager/docs/swagger"
)

// @title Card Manager API
// @version 1.0
// @description API for reconciling and serving financial data cards.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the card manager server",
	Long: `Starts the HTTP server, loads the configured workspace and runs the
background refresher and, when enabled, the realtime feed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !a.cfg.Deck.IsValidTier() {
			logg.Warn("Unknown deck tier, using free limits", zap.String("tier", a.cfg.Deck.Tier))
		}

		svc := deck.NewService(a.engine, a.source, a.store, a.cfg.Deck, logg)
		if err := svc.Load(ctx); err != nil {
			logg.Fatal("Failed to load workspace", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           a.cfg.Server.ReadTimeout(),
			WriteTimeout:          a.cfg.Server.WriteTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(deck.NewFeature(svc))

		// RayID first so every later log line can be traced.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := deck.NewRefresher(svc, a.source, a.cfg.Deck, logg)
			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error("Refresher stopped", zap.Error(err))
			}
		}()

		if a.cfg.Feed.Enabled {
			wg.Add(1)
			go func() {
				defer wg.Done()
				consumer := feed.NewConsumer(a.cfg.Feed, svc, svc.Symbols, logg)
				_ = consumer.Run(ctx)
			}()
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.String("workspace", a.cfg.Deck.Workspace))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		wg.Wait()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
