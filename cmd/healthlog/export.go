// ABOUTME: CLI commands for exporting and importing the journal.
// ABOUTME: Supports JSON, YAML, and Markdown export; imports JSON or YAML.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/charm"
	"github.com/harperreed/healthlog/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the journal",
	Long: `Export every reading in one document.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

EXAMPLES:

  healthlog export json                  # Export all data as JSON
  healthlog export json -o backup.json   # Save to file
  healthlog export markdown -o log.md    # Tables per metric`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}

		data, err := export.Encode(export.Collect(cmd.Context(), trk), format)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON or YAML export",
	Long: `Import readings from a file written by 'healthlog export json|yaml'.

Readings whose IDs already exist are skipped, so importing the same file
twice adds nothing the second time.

EXAMPLES:

  healthlog import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := export.Decode(raw)
		if err != nil {
			return err
		}

		// Sync once after the import instead of after every collection.
		if c, ok := store.(*charm.Client); ok {
			c.SetAutoSync(false)
			defer func() {
				c.SetAutoSync(true)
				_ = c.Sync()
			}()
		}

		res, err := export.Import(cmd.Context(), trk, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Imported %d records\n", res.Total())
		fmt.Fprintf(out, "  Glucose:  %d\n", res.Glucose)
		fmt.Fprintf(out, "  Pressure: %d\n", res.Pressure)
		fmt.Fprintf(out, "  Weight:   %d\n", res.Weight)
		fmt.Fprintf(out, "  Activity: %d\n", res.Activity)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd, importCmd)
}
