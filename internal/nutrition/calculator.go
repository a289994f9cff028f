// Package nutrition computes energy expenditure, calorie targets, and macro
// splits. Everything here is a pure function so results are reproducible for
// the same profile.
package nutrition

import (
	"math"

	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Calories per gram of each macronutrient.
const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// ActivityLevel feeds the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Macros is a daily macronutrient allocation in grams together with the
// calorie budget it was derived from.
type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	Calories int `json:"calories"`
}

// Plan is the full nutrition summary for a profile.
type Plan struct {
	BMR            int    `json:"bmr"`
	TDEE           int    `json:"tdee"`
	CalorieTarget  int    `json:"calorie_target"`
	Macros         Macros `json:"macros"`
	ProteinTargetG int    `json:"protein_target_g"`
	WaterLiters    float64 `json:"water_liters"`
}

// BasalMetabolicRate computes the Mifflin-St Jeor BMR in kcal/day.
func BasalMetabolicRate(weightKg, heightCm float64, ageYears int, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexFemale {
		return bmr - 161
	}
	return bmr + 5
}

// ActivityFactor returns the TDEE multiplier for an activity level. Unknown
// levels fall back to moderate.
func ActivityFactor(level ActivityLevel) float64 {
	switch level {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	}
	return 1.55
}

// ActivityForLevel maps experience level to an assumed activity level.
func ActivityForLevel(level profile.Level) ActivityLevel {
	switch level {
	case profile.LevelBeginner:
		return ActivityLight
	case profile.LevelIntermediate:
		return ActivityModerate
	case profile.LevelAdvanced:
		return ActivityActive
	}
	return ActivityModerate
}

// TotalDailyExpenditure scales BMR by the activity factor, rounded to whole
// kcal.
func TotalDailyExpenditure(bmr float64, level ActivityLevel) int {
	return int(math.Round(bmr * ActivityFactor(level)))
}

// calorieAdjustment is the daily surplus or deficit for each objective.
func calorieAdjustment(objective profile.Objective) int {
	switch objective {
	case profile.ObjectiveHypertrophy:
		return 300
	case profile.ObjectiveFatLoss:
		return -400
	case profile.ObjectiveConditioning:
		return 0
	case profile.ObjectivePerformance:
		return 200
	}
	return 0
}

// TargetCalories applies the objective's adjustment to the TDEE.
func TargetCalories(tdee int, objective profile.Objective) int {
	return tdee + calorieAdjustment(objective)
}

// macroPercentages returns the protein/carbs/fat percentage split for an
// objective. Defaults to the conditioning split for unknown objectives.
func macroPercentages(objective profile.Objective) (protein, carbs, fat int) {
	switch objective {
	case profile.ObjectiveHypertrophy:
		return 30, 45, 25
	case profile.ObjectiveFatLoss:
		return 35, 35, 30
	case profile.ObjectivePerformance:
		return 25, 55, 20
	case profile.ObjectiveConditioning:
	}
	return 25, 50, 25
}

// MacroSplit allocates calories to macros in grams. Each gram value is
// rounded independently, so summing the grams back to calories can drift a
// few kcal from the input.
func MacroSplit(calories int, objective profile.Objective) Macros {
	proteinPct, carbsPct, fatPct := macroPercentages(objective)
	grams := func(pct, perGram int) int {
		return int(math.Round(float64(calories) * float64(pct) / 100 / float64(perGram)))
	}
	return Macros{
		ProteinG: grams(proteinPct, caloriesPerGramProtein),
		CarbsG:   grams(carbsPct, caloriesPerGramCarbs),
		FatG:     grams(fatPct, caloriesPerGramFat),
		Calories: calories,
	}
}

// CaloriesFromMacros derives total calories from gram amounts.
func CaloriesFromMacros(proteinG, carbsG, fatG float64) int {
	return int(math.Round(proteinG*caloriesPerGramProtein +
		carbsG*caloriesPerGramCarbs +
		fatG*caloriesPerGramFat))
}

// BMI computes the body mass index rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10
}

// ClassifyBMI buckets a BMI value using the WHO thresholds.
func ClassifyBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	case bmi < 35:
		return "obese_class_1"
	case bmi < 40:
		return "obese_class_2"
	}
	return "obese_class_3"
}

// DailyProteinTarget returns the recommended daily protein in grams based on
// body weight and objective.
func DailyProteinTarget(weightKg float64, objective profile.Objective) int {
	perKg := map[profile.Objective]float64{
		profile.ObjectiveHypertrophy:  2.0,
		profile.ObjectiveFatLoss:      2.2,
		profile.ObjectiveConditioning: 1.6,
		profile.ObjectivePerformance:  1.8,
	}
	multiplier, ok := perKg[objective]
	if !ok {
		multiplier = 1.6
	}
	return int(math.Round(weightKg * multiplier))
}

// DailyWaterTarget returns the recommended daily water intake in liters,
// 35 ml per kg of body weight rounded to two decimals.
func DailyWaterTarget(weightKg float64) float64 {
	return math.Round(weightKg*35/10) / 100
}

// CalculatePlan composes the nutrition summary for a profile. The result is
// always computed fresh from the current weight, height, age, objective, and
// level. Sex is not part of the profile, so the male constant is used.
func CalculatePlan(user profile.User) Plan {
	bmr := BasalMetabolicRate(user.WeightKg, user.HeightCm, user.Age, SexMale)
	tdee := TotalDailyExpenditure(bmr, ActivityForLevel(user.Level))
	target := TargetCalories(tdee, user.Objective)
	return Plan{
		BMR:            int(math.Round(bmr)),
		TDEE:           tdee,
		CalorieTarget:  target,
		Macros:         MacroSplit(target, user.Objective),
		ProteinTargetG: DailyProteinTarget(user.WeightKg, user.Objective),
		WaterLiters:    DailyWaterTarget(user.WeightKg),
	}
}

// SumMacros totals the macros of multiple meals.
func SumMacros(meals []Macros) Macros {
	var total Macros
	for _, meal := range meals {
		total.ProteinG += meal.ProteinG
		total.CarbsG += meal.CarbsG
		total.FatG += meal.FatG
		total.Calories += meal.Calories
	}
	return total
}

// MacroPercentages reports how much of each target has been consumed, in
// whole percent. Zero targets yield zero to avoid dividing by zero.
func MacroPercentages(consumed, target Macros) Macros {
	pct := func(consumed, target int) int {
		if target == 0 {
			return 0
		}
		return int(math.Round(float64(consumed) / float64(target) * 100))
	}
	return Macros{
		ProteinG: pct(consumed.ProteinG, target.ProteinG),
		CarbsG:   pct(consumed.CarbsG, target.CarbsG),
		FatG:     pct(consumed.FatG, target.FatG),
		Calories: pct(consumed.Calories, target.Calories),
	}
}
