package plan

import (
	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// prescription is the sets, rep range, and rest applied to every exercise of
// a plan.
type prescription struct {
	Sets        int
	RepRange    string
	RestSeconds int
}

// daySplits maps objective and training days per week to the muscle groups
// trained on each day.
var daySplits = map[profile.Objective]map[int][][]catalog.MuscleGroup{
	profile.ObjectiveHypertrophy: {
		3: {
			{catalog.MuscleGroupChest, catalog.MuscleGroupTriceps},
			{catalog.MuscleGroupBack, catalog.MuscleGroupBiceps},
			{catalog.MuscleGroupLegs, catalog.MuscleGroupShoulders},
		},
		4: {
			{catalog.MuscleGroupChest},
			{catalog.MuscleGroupBack},
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupShoulders, catalog.MuscleGroupBiceps, catalog.MuscleGroupTriceps},
		},
		5: {
			{catalog.MuscleGroupChest},
			{catalog.MuscleGroupBack},
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupShoulders},
			{catalog.MuscleGroupBiceps, catalog.MuscleGroupTriceps},
		},
	},
	profile.ObjectiveFatLoss: {
		3: {
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
		},
		4: {
			{catalog.MuscleGroupChest, catalog.MuscleGroupBack, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupLegs, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupShoulders, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
		},
		5: {
			{catalog.MuscleGroupChest, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupBack, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupLegs, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupShoulders, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
		},
	},
	profile.ObjectiveConditioning: {
		3: {
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupCardio},
		},
		4: {
			{catalog.MuscleGroupChest, catalog.MuscleGroupBack},
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody},
		},
		5: {
			{catalog.MuscleGroupChest, catalog.MuscleGroupBack},
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupCardio},
			{catalog.MuscleGroupShoulders},
			{catalog.MuscleGroupCardio},
		},
	},
	profile.ObjectivePerformance: {
		3: {
			{catalog.MuscleGroupLegs, catalog.MuscleGroupCardio},
			{catalog.MuscleGroupChest, catalog.MuscleGroupBack},
			{catalog.MuscleGroupFullBody, catalog.MuscleGroupCardio},
		},
		4: {
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupChest, catalog.MuscleGroupBack},
			{catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody},
		},
		5: {
			{catalog.MuscleGroupLegs},
			{catalog.MuscleGroupChest},
			{catalog.MuscleGroupBack},
			{catalog.MuscleGroupCardio},
			{catalog.MuscleGroupFullBody},
		},
	},
}

// prescriptions maps objective and experience level to the training
// prescription.
var prescriptions = map[profile.Objective]map[profile.Level]prescription{
	profile.ObjectiveHypertrophy: {
		profile.LevelBeginner:     {Sets: 3, RepRange: "10-12", RestSeconds: 90},
		profile.LevelIntermediate: {Sets: 4, RepRange: "8-12", RestSeconds: 90},
		profile.LevelAdvanced:     {Sets: 4, RepRange: "6-12", RestSeconds: 120},
	},
	profile.ObjectiveFatLoss: {
		profile.LevelBeginner:     {Sets: 3, RepRange: "12-15", RestSeconds: 45},
		profile.LevelIntermediate: {Sets: 3, RepRange: "12-15", RestSeconds: 30},
		profile.LevelAdvanced:     {Sets: 4, RepRange: "15-20", RestSeconds: 30},
	},
	profile.ObjectiveConditioning: {
		profile.LevelBeginner:     {Sets: 2, RepRange: "12-15", RestSeconds: 60},
		profile.LevelIntermediate: {Sets: 3, RepRange: "12-15", RestSeconds: 45},
		profile.LevelAdvanced:     {Sets: 3, RepRange: "15-20", RestSeconds: 45},
	},
	profile.ObjectivePerformance: {
		profile.LevelBeginner:     {Sets: 3, RepRange: "8-10", RestSeconds: 120},
		profile.LevelIntermediate: {Sets: 4, RepRange: "6-8", RestSeconds: 150},
		profile.LevelAdvanced:     {Sets: 5, RepRange: "3-6", RestSeconds: 180},
	},
}

// daySplitFor looks up the split for the objective. Unknown day counts fall
// back to the four day split.
func daySplitFor(objective profile.Objective, days int) [][]catalog.MuscleGroup {
	split, ok := daySplits[objective][days]
	if !ok {
		return daySplits[objective][4]
	}
	return split
}

// prescriptionFor looks up the training prescription for the objective and
// level.
func prescriptionFor(objective profile.Objective, level profile.Level) prescription {
	return prescriptions[objective][level]
}

// exercisesPerGroup is how many exercises are picked per muscle group per
// day.
func exercisesPerGroup(level profile.Level) int {
	switch level {
	case profile.LevelBeginner:
		return 2
	case profile.LevelIntermediate:
		return 3
	}
	return 4
}

// clampDays bounds the training days per week to the supported range.
func clampDays(days int) int {
	return min(5, max(3, days))
}

// clampMealsPerDay bounds the meals per day to the supported range.
func clampMealsPerDay(meals int) int {
	return min(6, max(3, meals))
}

// mealSlotsFor returns the eating occasions for a given meal count, in the
// order they occur during the day.
func mealSlotsFor(mealsPerDay int) []catalog.MealSlot {
	switch clampMealsPerDay(mealsPerDay) {
	case 3:
		return []catalog.MealSlot{catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotDinner}
	case 4:
		return []catalog.MealSlot{catalog.SlotBreakfast, catalog.SlotLunch, catalog.SlotAfternoonSnack, catalog.SlotDinner}
	case 6:
		return []catalog.MealSlot{
			catalog.SlotBreakfast, catalog.SlotMorningSnack, catalog.SlotLunch,
			catalog.SlotAfternoonSnack, catalog.SlotDinner, catalog.SlotLateSnack,
		}
	}
	return []catalog.MealSlot{
		catalog.SlotBreakfast, catalog.SlotMorningSnack, catalog.SlotLunch,
		catalog.SlotAfternoonSnack, catalog.SlotDinner,
	}
}

// objectiveTitle is the display name used in generated plan names.
func objectiveTitle(objective profile.Objective) string {
	switch objective {
	case profile.ObjectiveHypertrophy:
		return "Hypertrophy"
	case profile.ObjectiveFatLoss:
		return "Fat Loss"
	case profile.ObjectiveConditioning:
		return "Conditioning"
	case profile.ObjectivePerformance:
		return "Performance"
	}
	return "Training"
}
