// ABOUTME: Input validation for health readings.
// ABOUTME: Pure functions; every violated rule is reported, not just the first.
package validate

import (
	"fmt"
	"math"
	"strings"

	z "github.com/Oudwins/zog"

	"github.com/harperreed/healthlog/internal/models"
)

// Result is the outcome of validating one candidate reading.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Error joins the messages for display.
func (r Result) Error() string {
	return strings.Join(r.Errors, "; ")
}

func result(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Bounds are inclusive.
const (
	GlucoseMin   = 20.0
	GlucoseMax   = 600.0
	SystolicMin  = 60.0
	SystolicMax  = 250.0
	DiastolicMin = 40.0
	DiastolicMax = 150.0
	WeightKgMin  = 20.0
	WeightKgMax  = 300.0
	WeightLbsMin = 44.0
	WeightLbsMax = 660.0
)

const (
	msgGlucoseRange   = "Value should be between 20-600 mg/dL"
	msgSystolicRange  = "Systolic pressure should be between 60-250 mmHg"
	msgDiastolicRange = "Diastolic pressure should be between 40-150 mmHg"
	msgSystolicHigher = "Systolic pressure should be higher than diastolic pressure"
	msgWeightKgRange  = "Weight should be between 20-300 kg"
	msgWeightLbsRange = "Weight should be between 44-660 lbs"
	msgWeightPositive = "Weight must be a positive number"
	msgWeightUnit     = "Unit must be kg or lbs"
)

// rangeSchema builds an inclusive bound check that reports msg on any failure.
// Zero fails the Required check, which carries the same message.
func rangeSchema(min, max float64, msg string) *z.NumberSchema[float64] {
	return z.Float64().
		Required(z.Message(msg)).
		GTE(min, z.Message(msg)).
		LTE(max, z.Message(msg))
}

var (
	glucoseSchema   = rangeSchema(GlucoseMin, GlucoseMax, msgGlucoseRange)
	systolicSchema  = rangeSchema(SystolicMin, SystolicMax, msgSystolicRange)
	diastolicSchema = rangeSchema(DiastolicMin, DiastolicMax, msgDiastolicRange)
	weightKgSchema  = rangeSchema(WeightKgMin, WeightKgMax, msgWeightKgRange)
	weightLbsSchema = rangeSchema(WeightLbsMin, WeightLbsMax, msgWeightLbsRange)
)

// check runs schema against v and returns its distinct messages.
func check(schema *z.NumberSchema[float64], v float64) []string {
	issues := schema.Validate(&v)
	var msgs []string
	seen := map[string]bool{}
	for _, issue := range issues {
		if !seen[issue.Message] {
			seen[issue.Message] = true
			msgs = append(msgs, issue.Message)
		}
	}
	return msgs
}

func notNumber(field string, v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%s must be a number", field), true
	}
	return "", false
}

// Glucose validates a blood sugar value in mg/dL.
func Glucose(value float64) Result {
	if msg, bad := notNumber("Value", value); bad {
		return result([]string{msg})
	}
	return result(check(glucoseSchema, value))
}

// Pressure validates a systolic/diastolic pair in mmHg. The ordering rule
// is reported whenever systolic does not exceed diastolic, independent of
// the bound checks.
func Pressure(systolic, diastolic float64) Result {
	var errs []string
	sysMsg, sysBad := notNumber("Systolic pressure", systolic)
	diaMsg, diaBad := notNumber("Diastolic pressure", diastolic)
	if sysBad {
		errs = append(errs, sysMsg)
	} else {
		errs = append(errs, check(systolicSchema, systolic)...)
	}
	if diaBad {
		errs = append(errs, diaMsg)
	} else {
		errs = append(errs, check(diastolicSchema, diastolic)...)
	}
	if !sysBad && !diaBad && systolic <= diastolic {
		errs = append(errs, msgSystolicHigher)
	}
	return result(errs)
}

// Weight validates a body weight in the given unit.
func Weight(weight float64, unit models.WeightUnit) Result {
	if msg, bad := notNumber("Weight", weight); bad {
		return result([]string{msg})
	}

	var errs []string
	switch unit {
	case models.UnitKg:
		errs = append(errs, check(weightKgSchema, weight)...)
	case models.UnitLbs:
		errs = append(errs, check(weightLbsSchema, weight)...)
	default:
		errs = append(errs, msgWeightUnit)
	}
	if weight <= 0 {
		errs = append(errs, msgWeightPositive)
	}
	return result(errs)
}

// GlucoseReading validates a full glucose reading.
func GlucoseReading(r *models.GlucoseReading) Result {
	res := Glucose(r.Value)
	if _, err := models.ParseMealContext(string(r.MealContext)); err != nil {
		res = result(append(res.Errors, err.Error()))
	}
	return res
}

// PressureReading validates a full pressure reading including heart rate.
func PressureReading(r *models.PressureReading) Result {
	res := Pressure(r.Systolic, r.Diastolic)
	if r.HeartRate != nil {
		if hr := *r.HeartRate; math.IsNaN(hr) || hr < 20 || hr > 250 {
			res = result(append(res.Errors, "Heart rate should be between 20-250 bpm"))
		}
	}
	return res
}

// WeightReading validates a full weight reading including body composition.
func WeightReading(r *models.WeightReading) Result {
	res := Weight(r.Weight, r.Unit)
	errs := res.Errors
	if r.BodyFatPct != nil {
		if bf := *r.BodyFatPct; math.IsNaN(bf) || bf < 0 || bf > 100 {
			errs = append(errs, "Body fat should be between 0-100%")
		}
	}
	if r.MuscleMass != nil {
		if mm := *r.MuscleMass; math.IsNaN(mm) || mm <= 0 || mm >= r.Weight {
			errs = append(errs, "Muscle mass must be positive and less than body weight")
		}
	}
	return result(errs)
}
