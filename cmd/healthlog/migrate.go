// ABOUTME: CLI command for copying the journal to another storage backend.
// ABOUTME: Readings already present in the destination are skipped.
package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/export"
	"github.com/harperreed/healthlog/internal/kv"
	"github.com/harperreed/healthlog/internal/tracker"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate <backend>",
	Short: "Copy the journal to another backend",
	Long: `Copy every reading from the configured backend into another one.

Readings whose IDs already exist in the destination are skipped, so the
command can be re-run safely. The source is not modified.

USAGE:

  healthlog migrate sqlite --dry-run          # Preview the copy
  healthlog migrate sqlite                    # charm -> sqlite
  healthlog --backend badger migrate charm    # badger -> charm

AFTER MIGRATION:

  Set "backend" in ~/.config/healthlog/config.json to the destination.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"charm", "badger", "sqlite"},
	RunE: func(cmd *cobra.Command, args []string) error {
		to := args[0]
		if to == cfg.GetBackend() {
			return fmt.Errorf("destination is the current backend (%s)", to)
		}
		out := cmd.OutOrStdout()

		data := export.Collect(cmd.Context(), trk)
		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintf(out, "Would copy from %s to %s:\n", cfg.GetBackend(), to)
			fmt.Fprintf(out, "  Glucose:  %d\n", len(data.Glucose))
			fmt.Fprintf(out, "  Pressure: %d\n", len(data.Pressure))
			fmt.Fprintf(out, "  Weight:   %d\n", len(data.Weight))
			fmt.Fprintf(out, "  Activity: %d\n", len(data.Activity))
			return nil
		}

		destCfg := *cfg
		destCfg.Backend = to
		dest, err := destCfg.OpenStore()
		if err != nil {
			return err
		}
		defer func() { _ = dest.Close() }()

		res, err := migrateJournal(cmd.Context(), data, dest)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Copied %d records to %s\n", res.Total(), to)
		fmt.Fprintf(out, "  Glucose:  %d\n", res.Glucose)
		fmt.Fprintf(out, "  Pressure: %d\n", res.Pressure)
		fmt.Fprintf(out, "  Weight:   %d\n", res.Weight)
		fmt.Fprintf(out, "  Activity: %d\n", res.Activity)
		return nil
	},
}

// migrateJournal imports data into dest through a tracker over dest.
func migrateJournal(ctx context.Context, data *export.Data, dest kv.Store) (export.ImportResult, error) {
	dst := tracker.New(dest, tracker.Options{Logger: logger})
	return export.Import(ctx, dst, data)
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
