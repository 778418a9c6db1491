// ABOUTME: Clinical classification of readings into named risk bands.
// ABOUTME: Each result carries a stable category, a label, and a display color.
package classify

import (
	"fmt"

	"github.com/harperreed/healthlog/internal/models"
)

// Category is a stable classification tag.
type Category string

const (
	PressureNormal   Category = "normal"
	PressureElevated Category = "elevated"
	PressureStage1   Category = "stage1"
	PressureStage2   Category = "stage2"
	PressureCrisis   Category = "crisis"

	GlucoseLow    Category = "low"
	GlucoseNormal Category = "normal"
	GlucoseHigh   Category = "high"

	BMIUnderweight Category = "underweight"
	BMINormal      Category = "normal"
	BMIOverweight  Category = "overweight"
	BMIObese       Category = "obese"
)

// Display colors, ordered by severity within each metric.
const (
	ColorBlue    = "#2196F3"
	ColorGreen   = "#4CAF50"
	ColorAmber   = "#FFC107"
	ColorOrange  = "#FF9800"
	ColorRed     = "#F44336"
	ColorDeepRed = "#D32F2F"
)

// Result is the classification of one reading.
type Result struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	// Severity orders categories within a metric; 0 is the healthy band.
	Severity int `json:"severity"`
	// Estimated is true when an input was substituted, e.g. a reference height.
	Estimated bool   `json:"estimated,omitempty"`
	Note      string `json:"note,omitempty"`
	// Value is the derived number the bands were applied to, e.g. the BMI.
	Value float64 `json:"value,omitempty"`
}

// band is one link of a first-match-wins chain.
type band struct {
	match  func() bool
	result Result
}

func firstMatch(bands []band, fallback Result) Result {
	for _, b := range bands {
		if b.match() {
			return b.result
		}
	}
	return fallback
}

// Pressure classifies a blood pressure pair using AHA categories.
func Pressure(systolic, diastolic float64) Result {
	return firstMatch([]band{
		{func() bool { return systolic >= 180 || diastolic >= 120 },
			Result{Category: PressureCrisis, Label: "Hypertensive Crisis", Color: ColorDeepRed, Severity: 4}},
		{func() bool { return systolic >= 140 || diastolic >= 90 },
			Result{Category: PressureStage2, Label: "Stage 2 Hypertension", Color: ColorRed, Severity: 3}},
		{func() bool { return systolic >= 130 || diastolic >= 80 },
			Result{Category: PressureStage1, Label: "Stage 1 Hypertension", Color: ColorOrange, Severity: 2}},
		{func() bool { return systolic >= 120 && diastolic < 80 },
			Result{Category: PressureElevated, Label: "Elevated", Color: ColorAmber, Severity: 1}},
	}, Result{Category: PressureNormal, Label: "Normal", Color: ColorGreen})
}

// PressureReading classifies a stored reading.
func PressureReading(r *models.PressureReading) Result {
	return Pressure(r.Systolic, r.Diastolic)
}

// PressureInTarget reports whether a reading is under 130/80.
func PressureInTarget(systolic, diastolic float64) bool {
	return systolic < 130 && diastolic < 80
}

// GlucoseRange returns the inclusive normal range for a meal context.
func GlucoseRange(mc models.MealContext) (low, high float64) {
	if mc == models.MealFasting {
		return 70, 100
	}
	return 70, 180
}

// Glucose classifies a blood sugar value for its meal context.
func Glucose(value float64, mc models.MealContext) Result {
	low, high := GlucoseRange(mc)
	switch {
	case value < low:
		return Result{Category: GlucoseLow, Label: "Low", Color: ColorBlue, Severity: 1}
	case value > high:
		return Result{Category: GlucoseHigh, Label: "High", Color: ColorRed, Severity: 2}
	}
	return Result{Category: GlucoseNormal, Label: "Normal", Color: ColorGreen}
}

// GlucoseReading classifies a stored reading.
func GlucoseReading(r *models.GlucoseReading) Result {
	return Glucose(r.Value, r.MealContext)
}

// GlucoseInTarget reports whether a value is within the normal range.
func GlucoseInTarget(value float64, mc models.MealContext) bool {
	return Glucose(value, mc).Category == GlucoseNormal
}

// ReferenceHeightCm is substituted when no height is known.
const ReferenceHeightCm = 170.0

// CalculateBMI returns weight / height².
func CalculateBMI(weightKg, heightM float64) float64 {
	return weightKg / (heightM * heightM)
}

// BMICategory maps a BMI value to its band.
func BMICategory(bmi float64) Result {
	r := firstMatch([]band{
		{func() bool { return bmi < 18.5 },
			Result{Category: BMIUnderweight, Label: "Underweight", Color: ColorBlue, Severity: 1}},
		{func() bool { return bmi < 25 },
			Result{Category: BMINormal, Label: "Normal Weight", Color: ColorGreen}},
		{func() bool { return bmi < 30 },
			Result{Category: BMIOverweight, Label: "Overweight", Color: ColorOrange, Severity: 2}},
	}, Result{Category: BMIObese, Label: "Obese", Color: ColorRed, Severity: 3})
	r.Value = bmi
	return r
}

// BMI classifies a body weight. When heightCm is nil or not positive the
// reference height is used and the result is marked Estimated.
func BMI(weight float64, unit models.WeightUnit, heightCm *float64) Result {
	h := ReferenceHeightCm
	estimated := heightCm == nil || *heightCm <= 0
	if !estimated {
		h = *heightCm
	}

	r := BMICategory(CalculateBMI(models.ConvertWeight(weight, unit, models.UnitKg), h/100))
	if estimated {
		r.Estimated = true
		r.Note = fmt.Sprintf("estimated using reference height %.0f cm; set height_cm for an exact BMI", ReferenceHeightCm)
	}
	return r
}

// WeightReading classifies a stored weight reading.
func WeightReading(r *models.WeightReading, heightCm *float64) Result {
	return BMI(r.Weight, r.Unit, heightCm)
}
