package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shopify-sync/core/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var everyFlag time.Duration

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [stage...]",
	Short: "Run the sync pipeline",
	Long: `Runs every stage in order (inventory, orders, shipments, payments), or only
the named stages. The exit status is non-zero when any stage failed.
With --every the pipeline repeats on the interval until interrupted.`,
	ValidArgs: []string{
		pipeline.StageInventory,
		pipeline.StageOrders,
		pipeline.StageShipments,
		pipeline.StagePayments,
	},
	Args: cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		orch, err := a.orchestrator()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if orch, err = orch.Only(args...); err != nil {
				return err
			}
		}

		interval := a.every(everyFlag)
		if interval <= 0 {
			return runOnce(ctx, orch)
		}
		return runEvery(ctx, a.log, orch, interval)
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
	syncCmd.Flags().DurationVar(&everyFlag, "every", 0, "Repeat the pipeline on this interval (e.g. 15m)")
}

// runner is the part of the orchestrator the sync command drives.
type runner interface {
	Run(ctx context.Context) pipeline.Summary
}

func runOnce(ctx context.Context, r runner) error {
	return summaryErr(r.Run(ctx))
}

// runEvery repeats the pipeline until ctx is cancelled. Failed runs are
// logged and the schedule continues.
func runEvery(ctx context.Context, log *zap.Logger, r runner, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := summaryErr(r.Run(ctx)); err != nil {
			log.Warn("Scheduled run failed", zap.Error(err))
		}
		log.Info("Next run scheduled", zap.Duration("interval", interval))

		select {
		case <-ctx.Done():
			log.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// summaryErr turns a failed run into an error naming the failed stages.
func summaryErr(s pipeline.Summary) error {
	if s.OK() {
		return nil
	}
	var failed []string
	for _, st := range s.Stages {
		if !st.OK() {
			failed = append(failed, st.Name)
		}
	}
	return fmt.Errorf("sync run %s failed: %s", s.RunID, strings.Join(failed, ", "))
}
