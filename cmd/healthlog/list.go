// ABOUTME: CLI commands for listing readings and showing the latest one.
// ABOUTME: Supports day windows, today-only, and result limits.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/tracker"
)

var (
	listDays  int
	listToday bool
	listLimit int
	listType  string
	listQuery string
)

var listCmd = &cobra.Command{
	Use:     "list <metric>",
	Aliases: []string{"ls", "l"},
	Short:   "List readings of one metric",
	Long: `List readings of one metric, newest first.

METRICS:

  glucose (sugar, bg), bp (pressure), weight (w), activity

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  VALUES  CLASSIFICATION  (NOTES)

  The ID is an 8-character prefix; 'healthlog delete' needs the full ID,
  shown by 'healthlog latest'.

EXAMPLES:

  healthlog list glucose                  # Last 20 readings
  healthlog list bp --days 7              # Last week
  healthlog list weight --today           # Today only
  healthlog list activity --type exercise # Only exercise
  healthlog list activity --search run    # Name or notes contain "run"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"glucose", "bp", "weight", "activity"},
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := models.ParseMetric(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var readings []models.Reading
		if metric == models.MetricActivity && (listType != "" || listQuery != "") {
			readings, err = filterActivities(cmd)
		} else {
			readings, err = trk.List(ctx, metric, tracker.Range{Days: listDays, Today: listToday})
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(readings) == 0 {
			fmt.Fprintf(out, "No %s readings found.\n", metric)
			return nil
		}

		tracker.NewestFirst(readings)
		if listLimit > 0 && len(readings) > listLimit {
			readings = readings[:listLimit]
		}
		for _, r := range readings {
			printReading(out, r)
		}
		return nil
	},
}

func filterActivities(cmd *cobra.Command) ([]models.Reading, error) {
	var want models.ActivityType
	if listType != "" {
		at, err := models.ParseActivityType(listType)
		if err != nil {
			return nil, err
		}
		want = at
	}

	var out []models.Reading
	for _, e := range trk.SearchActivities(cmd.Context(), listQuery) {
		if want != "" && e.Type != want {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var latestCmd = &cobra.Command{
	Use:   "latest <metric>",
	Short: "Show the most recent reading of a metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := models.ParseMetric(args[0])
		if err != nil {
			return err
		}

		r, ok, err := trk.Latest(cmd.Context(), metric)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "No %s readings found.\n", metric)
			return nil
		}

		printReading(out, r)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("id:"), r.GetID())
		if c, ok := trk.Classify(r); ok && c.Note != "" {
			fmt.Fprintf(out, "  %s\n", faint.Sprint("* "+c.Note))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listDays, "days", 0, "only the last N days")
	listCmd.Flags().BoolVar(&listToday, "today", false, "only today")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results (0 for all)")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "activity type filter")
	listCmd.Flags().StringVarP(&listQuery, "search", "s", "", "activity name or notes search")
	rootCmd.AddCommand(listCmd, latestCmd)
}
