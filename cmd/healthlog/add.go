// ABOUTME: CLI commands for logging glucose, blood pressure, weight, and activities.
// ABOUTME: Readings are validated before saving and echoed with their classification.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/validate"
)

var (
	addAt    string
	addNotes string

	glucoseContext string

	bpHeartRate float64

	weightUnit    string
	weightBodyFat float64
	weightMuscle  float64

	actDuration     float64
	actCalories     float64
	actExerciseType string
	actIntensity    string
	actHeartRate    float64
	actMealType     string
	actCarbs        float64
	actProtein      float64
	actFat          float64
	actDosage       string
	actSkipped      bool
	actBedtime      string
	actWakeTime     string
	actQuality      string
)

func addTime() (time.Time, error) {
	if addAt == "" {
		return time.Time{}, nil
	}
	t, err := parseTime(addAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", addAt)
	}
	return t, nil
}

// optional returns a pointer to the flag value if the flag was set.
func optional(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func parseValue(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, s)
	}
	return v, nil
}

func reportSaved(cmd *cobra.Command, what string, r models.Reading, res validate.Result) error {
	if !res.Valid {
		return printValidation(cmd.ErrOrStderr(), res)
	}
	w := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(w, "✓ Added %s\n", what)
	line := fmt.Sprintf("  %s %s", faint.Sprint(shortID(r.GetID())), describe(r))
	if c, ok := trk.Classify(r); ok {
		line += "  " + label(c)
		if c.Note != "" {
			line += "\n  " + faint.Sprint("* "+c.Note)
		}
	}
	fmt.Fprintln(w, line)
	return nil
}

var glucoseCmd = &cobra.Command{
	Use:     "glucose",
	Aliases: []string{"sugar", "bg"},
	Short:   "Blood sugar readings",
}

var glucoseAddCmd = &cobra.Command{
	Use:   "add <mg/dL>",
	Short: "Log a blood sugar reading",
	Long: `Log a blood sugar reading in mg/dL (20-600).

Examples:
  healthlog glucose add 95 --context fasting
  healthlog glucose add 160 --context after-meal --notes "pasta"
  healthlog glucose add 110 --at "2025-01-31 07:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue("value", args[0])
		if err != nil {
			return err
		}
		mc, err := models.ParseMealContext(glucoseContext)
		if err != nil {
			return err
		}
		at, err := addTime()
		if err != nil {
			return err
		}

		r := models.NewGlucoseReading(value, mc, at)
		r.WithNotes(addNotes)

		saved, res, err := trk.LogGlucose(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("failed to save reading: %w", err)
		}
		return reportSaved(cmd, "blood sugar", saved, res)
	},
}

var bpCmd = &cobra.Command{
	Use:     "bp",
	Aliases: []string{"pressure"},
	Short:   "Blood pressure readings",
}

var bpAddCmd = &cobra.Command{
	Use:   "add <systolic> <diastolic>",
	Short: "Log a blood pressure reading",
	Long: `Log a blood pressure reading in mmHg.

Examples:
  healthlog bp add 120 80
  healthlog bp add 135 88 --hr 72`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := parseValue("systolic value", args[0])
		if err != nil {
			return err
		}
		dia, err := parseValue("diastolic value", args[1])
		if err != nil {
			return err
		}
		at, err := addTime()
		if err != nil {
			return err
		}

		r := models.NewPressureReading(sys, dia, at)
		r.HeartRate = optional(cmd, "hr", bpHeartRate)
		r.WithNotes(addNotes)

		saved, res, err := trk.LogPressure(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("failed to save reading: %w", err)
		}
		return reportSaved(cmd, "blood pressure", saved, res)
	},
}

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Body weight readings",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Log a body weight reading",
	Long: `Log a body weight reading in kg (default) or lbs.

Examples:
  healthlog weight add 82.5
  healthlog weight add 182 --unit lbs --body-fat 21.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue("weight", args[0])
		if err != nil {
			return err
		}
		unit, err := models.ParseWeightUnit(weightUnit)
		if err != nil {
			return err
		}
		at, err := addTime()
		if err != nil {
			return err
		}

		r := models.NewWeightReading(value, unit, at)
		r.BodyFatPct = optional(cmd, "body-fat", weightBodyFat)
		r.MuscleMass = optional(cmd, "muscle", weightMuscle)
		r.WithNotes(addNotes)

		saved, res, err := trk.LogWeight(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("failed to save reading: %w", err)
		}
		return reportSaved(cmd, "weight", saved, res)
	},
}

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"act"},
	Short:   "Exercise, meals, medication, sleep, and other activities",
}

var activityAddCmd = &cobra.Command{
	Use:   "add <type> [name]",
	Short: "Log an activity",
	Long: `Log an activity. Type is exercise, meal, medication, sleep, or other.

For medication the name is the medication name. Sleep takes --bedtime and
--wake instead of --at; its name defaults to "Sleep".

Examples:
  healthlog activity add exercise "Morning run" --duration 30 --intensity high
  healthlog activity add meal Oatmeal --meal-type breakfast --carbs 45
  healthlog activity add medication Metformin --dosage 500mg
  healthlog activity add sleep --bedtime "2025-01-30 23:00" --wake "2025-01-31 07:00"
  healthlog activity add other Meditation --duration 10`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := models.ParseActivityType(args[0])
		if err != nil {
			return err
		}
		var name string
		if len(args) > 1 {
			name = args[1]
		}

		fields := models.ActivityFields{
			Duration:     optional(cmd, "duration", actDuration),
			Calories:     optional(cmd, "calories", actCalories),
			Notes:        addNotes,
			ExerciseType: actExerciseType,
			Intensity:    actIntensity,
			HeartRate:    optional(cmd, "hr", actHeartRate),
			MealType:     actMealType,
			Carbs:        optional(cmd, "carbs", actCarbs),
			Protein:      optional(cmd, "protein", actProtein),
			Fat:          optional(cmd, "fat", actFat),
			Dosage:       actDosage,
			Taken:        !actSkipped,
			Quality:      actQuality,
		}
		if fields.Timestamp, err = addTime(); err != nil {
			return err
		}
		if actBedtime != "" {
			if fields.Bedtime, err = parseTime(actBedtime); err != nil {
				return err
			}
		}
		if actWakeTime != "" {
			if fields.WakeTime, err = parseTime(actWakeTime); err != nil {
				return err
			}
		}

		e, err := models.BuildActivity(at, name, fields)
		if err != nil {
			return err
		}

		saved, res, err := trk.LogActivity(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to save activity: %w", err)
		}
		return reportSaved(cmd, string(at), saved, res)
	},
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&addAt, "at", "", "timestamp (YYYY-MM-DD HH:MM or RFC 3339), defaults to now")
	cmd.Flags().StringVar(&addNotes, "notes", "", "optional notes")
}

func init() {
	glucoseAddCmd.Flags().StringVarP(&glucoseContext, "context", "c", "", "meal context: fasting, before-meal, after-meal, bedtime")
	addCommonFlags(glucoseAddCmd)
	glucoseCmd.AddCommand(glucoseAddCmd)

	bpAddCmd.Flags().Float64Var(&bpHeartRate, "hr", 0, "heart rate in bpm")
	addCommonFlags(bpAddCmd)
	bpCmd.AddCommand(bpAddCmd)

	weightAddCmd.Flags().StringVarP(&weightUnit, "unit", "u", "kg", "kg or lbs")
	weightAddCmd.Flags().Float64Var(&weightBodyFat, "body-fat", 0, "body fat percentage")
	weightAddCmd.Flags().Float64Var(&weightMuscle, "muscle", 0, "muscle mass, same unit as weight")
	addCommonFlags(weightAddCmd)
	weightCmd.AddCommand(weightAddCmd)

	f := activityAddCmd.Flags()
	f.Float64VarP(&actDuration, "duration", "d", 0, "duration in minutes")
	f.Float64Var(&actCalories, "calories", 0, "calories burned or eaten")
	f.StringVar(&actExerciseType, "exercise-type", "", "exercise kind, e.g. cardio or strength")
	f.StringVar(&actIntensity, "intensity", "", "exercise intensity: low, moderate, high")
	f.Float64Var(&actHeartRate, "hr", 0, "average exercise heart rate in bpm")
	f.StringVar(&actMealType, "meal-type", "", "breakfast, lunch, dinner, snack")
	f.Float64Var(&actCarbs, "carbs", 0, "carbohydrates in grams")
	f.Float64Var(&actProtein, "protein", 0, "protein in grams")
	f.Float64Var(&actFat, "fat", 0, "fat in grams")
	f.StringVar(&actDosage, "dosage", "", "medication dosage, e.g. 500mg")
	f.BoolVar(&actSkipped, "skipped", false, "medication was not taken")
	f.StringVar(&actBedtime, "bedtime", "", "sleep start time")
	f.StringVar(&actWakeTime, "wake", "", "sleep end time")
	f.StringVar(&actQuality, "quality", "", "sleep quality: poor, fair, good, excellent")
	addCommonFlags(activityAddCmd)
	activityCmd.AddCommand(activityAddCmd)

	rootCmd.AddCommand(glucoseCmd, bpCmd, weightCmd, activityCmd)
}
