package cmd

import (
	"fmt"
	"time"

	"shopify-sync/core/cursor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cursorSetFlag string

// cursorCmd represents the cursor command
var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Inspect or move export cursors",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// cursorShowCmd represents the cursor show command
var cursorShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print the cursor (defaults to the order export cursor)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		key := cursorKey(a, args)
		m, ok, err := a.cursors.Read(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to read cursor %s: %w", key, err)
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not set (next export includes every order)\n", key)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d seen at this second)\n", key, m.Position.UTC().Format(time.RFC3339), len(m.Seen))
		return nil
	},
}

// cursorResetCmd represents the cursor reset command
var cursorResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Clear the cursor, or move it with --to",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		key := cursorKey(a, args)

		if cursorSetFlag == "" {
			if err := a.cursors.Reset(ctx, key); err != nil {
				return fmt.Errorf("failed to reset cursor %s: %w", key, err)
			}
			a.log.Info("Cursor cleared", zap.String("key", key))
			return nil
		}

		t, err := time.Parse(time.RFC3339, cursorSetFlag)
		if err != nil {
			return fmt.Errorf("invalid --to %q: %w", cursorSetFlag, err)
		}
		if err := a.cursors.Write(ctx, key, cursor.Mark{Position: t}); err != nil {
			return fmt.Errorf("failed to write cursor %s: %w", key, err)
		}
		a.log.Info("Cursor moved", zap.String("key", key), zap.Time("position", t))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cursorCmd)
	cursorCmd.AddCommand(cursorShowCmd, cursorResetCmd)
	cursorResetCmd.Flags().StringVar(&cursorSetFlag, "to", "", "Set the cursor to this RFC 3339 time instead of clearing it")
}

func cursorKey(a *app, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return a.cfg.Sync.Orders.CursorKey
}
