// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server over the open tracker until a signal arrives.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "healthlog": {
        "command": "healthlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_glucose         Record a blood sugar reading
  log_pressure        Record a blood pressure reading
  log_weight          Record a body weight
  log_activity        Record exercise, a meal, medication, sleep, or other
  list_readings       List recent readings of a metric
  delete_reading      Delete a reading by ID
  get_latest          Most recent reading per metric
  get_stats           Averages, trends, and streaks
  search_activities   Search activities by name or notes

AVAILABLE RESOURCES:

  healthlog://recent    Recent readings per metric
  healthlog://today     Today's readings
  healthlog://summary   Seven-day dashboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trk, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
