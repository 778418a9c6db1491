// ABOUTME: CLI command for deleting a reading.
// ABOUTME: Deleting an unknown ID is reported but is not an error.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <metric> <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a reading",
	Long: `Delete a reading by its full ID.

The full ID is shown by 'healthlog latest' and in exports.

EXAMPLES:

  healthlog delete glucose 6f1c2a9e-...   # Delete a glucose reading
  healthlog rm bp 0b7d...                 # Delete a blood pressure reading

CAUTION:

  This permanently deletes the reading. There is no undo.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := models.ParseMetric(args[0])
		if err != nil {
			return err
		}
		id := args[1]
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var existing models.Reading
		readings, err := trk.List(ctx, metric, tracker.Range{})
		if err != nil {
			return err
		}
		for _, r := range readings {
			if r.GetID() == id {
				existing = r
				break
			}
		}
		if existing == nil {
			color.New(color.FgYellow).Fprintf(out, "No %s reading with ID %s\n", metric, id)
			return nil
		}

		if err := trk.Delete(ctx, metric, id); err != nil {
			return fmt.Errorf("failed to delete reading: %w", err)
		}

		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s reading\n", metric)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(shortID(id)), describe(existing))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
