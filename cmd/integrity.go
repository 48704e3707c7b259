package cmd

import (
	"context"
	"errors"
	"fmt"

	"shopify-sync/feature/integrity"
	"shopify-sync/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that the bucket, database and store are ready for syncing",
	Long:  `Checks the bucket folder structure, the database tables and the commerce API connection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket and its folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the cursor and run history tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// commerceCmd represents the integrity commerce command
var commerceCmd = &cobra.Command{
	Use:   "commerce",
	Short: "Check the commerce API credentials and connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd, commerceCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema, runCommerce bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.log

	svc := integrity.NewService(a.client, a.cfg.Storage.Bucket, a.cfg.Folders(), logg, a.db, a.api)
	healthy := true

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if errors.Is(err, checks.ErrBucketMissing) && fixFlag {
			if err := svc.CreateBucket(ctx, a.cfg.Storage.Region); err != nil {
				return err
			}
			missing, err = svc.CheckStructure(ctx)
		}
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else if fixFlag {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Fixing missing folders...")
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		} else {
			healthy = false
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Run 'integrity structure --fix' to create missing folders.")
		}
	}

	if runSchema {
		if a.db == nil {
			logg.Info("Database disabled, skipping schema check.")
		} else {
			logg.Info("Checking database schema...")
			report, err := svc.CheckSchema()
			if err != nil {
				return fmt.Errorf("schema check failed: %w", err)
			}
			if report.Matched {
				logg.Info("Database schema matches expected definition.")
			} else {
				healthy = false
				for table, tbl := range report.Tables {
					if tbl.Status == "ok" {
						continue
					}
					if len(tbl.MissingColumns) > 0 {
						logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
					}
					if len(tbl.TypeMismatches) > 0 {
						logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
					}
				}
				for _, e := range report.Errors {
					logg.Error("Inspection Error", zap.String("error", e))
				}
			}
		}
	}

	if runCommerce {
		logg.Info("Checking commerce API...")
		report, err := svc.CheckCommerce(ctx)
		if err != nil {
			return fmt.Errorf("commerce check failed: %w", err)
		}
		if report.Reachable {
			logg.Info("Commerce API reachable.",
				zap.Int("products", report.Products),
				zap.Int("open_orders", report.OpenOrders),
			)
		} else {
			healthy = false
			logg.Error("Commerce API unreachable", zap.String("error", report.Error))
		}
	}

	if !healthy {
		return fmt.Errorf("integrity checks found problems")
	}
	return nil
}
