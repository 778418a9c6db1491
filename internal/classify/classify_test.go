// ABOUTME: Tests for clinical classification bands.
// ABOUTME: Covers AHA pressure chain, meal-dependent glucose ranges, and BMI estimation.
package classify

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/healthlog/internal/models"
)

func TestPressure(t *testing.T) {
	tests := []struct {
		sys, dia float64
		want     Category
		color    string
	}{
		{118, 76, PressureNormal, ColorGreen},
		{125, 78, PressureElevated, ColorAmber},
		{135, 85, PressureStage1, ColorOrange},
		{128, 82, PressureStage1, ColorOrange},
		{145, 85, PressureStage2, ColorRed},
		{120, 95, PressureStage2, ColorRed},
		{182, 95, PressureCrisis, ColorDeepRed},
		{150, 121, PressureCrisis, ColorDeepRed},
		{179, 119, PressureStage2, ColorRed},
	}

	for _, tt := range tests {
		got := Pressure(tt.sys, tt.dia)
		if got.Category != tt.want {
			t.Errorf("Pressure(%v/%v) = %s, want %s", tt.sys, tt.dia, got.Category, tt.want)
		}
		if got.Color != tt.color {
			t.Errorf("Pressure(%v/%v) color = %s, want %s", tt.sys, tt.dia, got.Color, tt.color)
		}
	}
}

func TestPressureSeverityIsMonotonic(t *testing.T) {
	order := []Result{Pressure(110, 70), Pressure(125, 70), Pressure(132, 70), Pressure(142, 70), Pressure(185, 70)}
	for i := 1; i < len(order); i++ {
		if order[i].Severity <= order[i-1].Severity {
			t.Errorf("severity of %s should exceed %s", order[i].Category, order[i-1].Category)
		}
	}
}

func TestPressureInTarget(t *testing.T) {
	if !PressureInTarget(125, 75) {
		t.Error("125/75 should be in target")
	}
	if PressureInTarget(130, 75) {
		t.Error("130/75 should be out of target")
	}
}

func TestGlucose(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		mc    models.MealContext
		want  Category
	}{
		{"fasting normal", 95, models.MealFasting, GlucoseNormal},
		{"fasting upper bound", 100, models.MealFasting, GlucoseNormal},
		{"fasting high", 150, models.MealFasting, GlucoseHigh},
		{"fasting low", 65, models.MealFasting, GlucoseLow},
		{"after meal 150", 150, models.MealAfterMeal, GlucoseNormal},
		{"unspecified upper bound", 180, "", GlucoseNormal},
		{"bedtime high", 181, models.MealBedtime, GlucoseHigh},
		{"lower bound", 70, models.MealBeforeMeal, GlucoseNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Glucose(tt.value, tt.mc)
			if got.Category != tt.want {
				t.Errorf("Glucose(%v, %q) = %s, want %s", tt.value, tt.mc, got.Category, tt.want)
			}
		})
	}
}

func TestGlucoseReadingColors(t *testing.T) {
	r := models.NewGlucoseReading(50, models.MealFasting, time.Time{})
	if got := GlucoseReading(r); got.Color != ColorBlue {
		t.Errorf("low color = %s, want %s", got.Color, ColorBlue)
	}
	if !GlucoseInTarget(90, models.MealFasting) {
		t.Error("90 fasting should be in target")
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want Category
	}{
		{17, BMIUnderweight},
		{18.5, BMINormal},
		{24.99, BMINormal},
		{25, BMIOverweight},
		{29.9, BMIOverweight},
		{30, BMIObese},
	}
	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got.Category != tt.want {
			t.Errorf("BMICategory(%v) = %s, want %s", tt.bmi, got.Category, tt.want)
		}
	}
}

func TestBMIWithHeight(t *testing.T) {
	got := BMI(80, models.UnitKg, models.Float(180))
	if got.Estimated {
		t.Error("explicit height should not be estimated")
	}
	if math.Abs(got.Value-24.691) > 0.001 {
		t.Errorf("BMI = %v, want ~24.69", got.Value)
	}
	if got.Category != BMINormal {
		t.Errorf("Category = %s, want normal", got.Category)
	}
}

func TestBMIEstimatesWithoutHeight(t *testing.T) {
	got := BMI(80, models.UnitKg, nil)
	if !got.Estimated {
		t.Fatal("missing height must be flagged as estimated")
	}
	if !strings.Contains(got.Note, "170") {
		t.Errorf("Note should name the reference height, got %q", got.Note)
	}
	// 80 / 1.7² = 27.68
	if got.Category != BMIOverweight {
		t.Errorf("Category = %s, want overweight", got.Category)
	}
}

func TestBMIConvertsPounds(t *testing.T) {
	kg := BMI(80, models.UnitKg, models.Float(175))
	lbs := BMI(80*models.LbsPerKg, models.UnitLbs, models.Float(175))
	if math.Abs(kg.Value-lbs.Value) > 1e-9 {
		t.Errorf("BMI in lbs = %v, want %v", lbs.Value, kg.Value)
	}
}
