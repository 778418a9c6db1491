// ABOUTME: CLI commands for period statistics, streaks, and the dashboard summary.
// ABOUTME: Statistics are computed by the tracker; these commands only format them.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/stats"
	"github.com/harperreed/healthlog/internal/tracker"
)

var (
	statsDays   int
	streakType  string
	summaryDays int
)

var statsCmd = &cobra.Command{
	Use:   "stats <metric>",
	Short: "Show averages and trend for a metric",
	Long: `Show the average, reading count, and first-to-last trend of a metric
over the last N days.

A trend is "stable" when the change is under 1%.

EXAMPLES:

  healthlog stats glucose             # Last 7 days
  healthlog stats bp --days 30        # Last 30 days
  healthlog stats activity            # Exercise minutes, meals, sleep`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := models.ParseMetric(args[0])
		if err != nil {
			return err
		}
		ms, err := trk.Stats(cmd.Context(), metric, statsDays)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), ms)
		return nil
	},
}

func printStats(w io.Writer, ms tracker.MetricStats) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s, last %d days\n", ms.Metric, ms.Days)
	fmt.Fprintf(w, "  Readings: %d\n", ms.Count)

	if ms.Activity != nil {
		printActivitySummary(w, *ms.Activity)
		return
	}
	if ms.Average == nil {
		fmt.Fprintln(w, faint.Sprint("  No readings in this period."))
		return
	}

	if ms.AverageDiastolic != nil {
		fmt.Fprintf(w, "  Average:  %.0f/%.0f %s\n", *ms.Average, *ms.AverageDiastolic, ms.Unit)
	} else {
		fmt.Fprintf(w, "  Average:  %.1f %s\n", *ms.Average, ms.Unit)
	}
	if ms.Trend != nil {
		fmt.Fprintf(w, "  Trend:    %s\n", trendText(*ms.Trend))
	}
}

func trendText(tr stats.TrendResult) string {
	text := fmt.Sprintf("%s (%+.1f, %+.1f%%)", tr.Direction, tr.Change, tr.ChangePercentage)
	switch tr.Direction {
	case stats.Increasing:
		return color.New(color.FgYellow).Sprint("↑ " + text)
	case stats.Decreasing:
		return color.New(color.FgCyan).Sprint("↓ " + text)
	}
	return color.New(color.FgGreen).Sprint("→ " + text)
}

func printActivitySummary(w io.Writer, s stats.ActivitySummary) {
	fmt.Fprintf(w, "  Exercise:    %.0f min, %.0f kcal\n", s.ExerciseMinutes, s.CaloriesBurned)
	fmt.Fprintf(w, "  Meals:       %d (%.0f g carbs)\n", s.MealsLogged, s.CarbsGrams)
	fmt.Fprintf(w, "  Medication:  %d taken, %d missed\n", s.MedicationsTaken, s.MedicationsMissed)
	if s.AverageSleepHours > 0 {
		fmt.Fprintf(w, "  Sleep:       %.1f h average\n", s.AverageSleepHours)
	}
	if s.OtherLogged > 0 {
		fmt.Fprintf(w, "  Other:       %d\n", s.OtherLogged)
	}
}

var streakCmd = &cobra.Command{
	Use:   "streak <metric>",
	Short: "Count consecutive days with a reading",
	Long: `Count consecutive calendar days, ending today, with at least one reading.

With --type, only activities of that type count.

EXAMPLES:

  healthlog streak glucose
  healthlog streak activity --type exercise`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := models.ParseMetric(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var days int
		what := string(metric)
		if streakType != "" {
			if metric != models.MetricActivity {
				return fmt.Errorf("--type only applies to activity")
			}
			at, err := models.ParseActivityType(streakType)
			if err != nil {
				return err
			}
			days = trk.ActivityStreak(ctx, at)
			what = string(at)
		} else if days, err = trk.Streak(ctx, metric); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if days == 0 {
			fmt.Fprintf(out, "No %s logged today.\n", what)
			return nil
		}
		plural := "s"
		if days == 1 {
			plural = ""
		}
		color.New(color.FgGreen).Fprintf(out, "🔥 %d day%s of %s in a row\n", days, plural, what)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"dash"},
	Short:   "Show a dashboard across all metrics",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := trk.Summary(cmd.Context(), summaryDays)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, ov := range []tracker.MetricOverview{sum.Glucose, sum.Pressure, sum.Weight, sum.Activity} {
			printStats(out, ov.MetricStats)
			if ov.Latest != nil {
				line := "  Latest:   " + describe(ov.Latest)
				if ov.Classification != nil {
					line += " " + label(*ov.Classification)
				}
				fmt.Fprintln(out, line)
			}
			if ov.Streak > 0 {
				fmt.Fprintf(out, "  Streak:   %d days\n", ov.Streak)
			}
			fmt.Fprintln(out)
		}

		for _, d := range trk.Diagnostics() {
			color.New(color.FgYellow).Fprintf(out, "⚠ %s could not be read (%s); shown as empty\n", d.Key, d.Kind)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "period length in days")
	streakCmd.Flags().StringVarP(&streakType, "type", "t", "", "activity type (exercise, meal, medication, sleep, other)")
	summaryCmd.Flags().IntVar(&summaryDays, "days", 7, "period length in days")
	rootCmd.AddCommand(statsCmd, streakCmd, summaryCmd)
}
