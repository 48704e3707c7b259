package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify-sync/core/loader"
	"shopify-sync/core/logger"
	"shopify-sync/core/middleware/auth"
	"shopify-sync/core/middleware/rayid"
	"shopify-sync/feature/integrity"
	"shopify-sync/feature/trigger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveEveryFlag time.Duration

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync trigger server",
	Long: `Starts the HTTP server exposing POST /sync, GET /runs and the integrity checks.
With --every the pipeline also runs on a schedule in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Collaborators
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.log
		zap.ReplaceGlobals(logg)

		orch, err := a.orchestrator()
		if err != nil {
			return err
		}

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		var runs trigger.History
		if a.recorder != nil {
			runs = a.recorder
		}
		mgr.Register(trigger.NewFeature(orch, runs, logg))

		checks := integrity.NewFeature(a.client, a.cfg.Storage.Bucket, a.cfg.Folders(), logg, a.db, a.api)
		checks.SetEnabled(a.cfg.Server.Integrity)
		mgr.Register(checks)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 5. Scheduler (Optional)
		if interval := a.every(serveEveryFlag); interval > 0 {
			go func() {
				_ = runEvery(ctx, logg, orch, interval)
			}()
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Error("Server failed to start", zap.Error(err))
				stop()
			}
		}()

		// 7. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().DurationVar(&serveEveryFlag, "every", 0, "Also run the pipeline on this interval (e.g. 1h)")
}
