// Package catalog holds the exercise and meal reference data that plans are
// built from.
package catalog

import (
	"github.com/saulgabriel7/athlete-core/internal/errors"
	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.NewSentinel("catalog entry not found")

// MuscleGroup identifies the primary target of an exercise.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "chest"
	MuscleGroupBack      MuscleGroup = "back"
	MuscleGroupShoulders MuscleGroup = "shoulders"
	MuscleGroupBiceps    MuscleGroup = "biceps"
	MuscleGroupTriceps   MuscleGroup = "triceps"
	MuscleGroupLegs      MuscleGroup = "legs"
	MuscleGroupGlutes    MuscleGroup = "glutes"
	MuscleGroupAbs       MuscleGroup = "abs"
	MuscleGroupCardio    MuscleGroup = "cardio"
	MuscleGroupFullBody  MuscleGroup = "full_body"
)

// MuscleGroups lists the full taxonomy in catalog order.
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleGroupChest, MuscleGroupBack, MuscleGroupShoulders,
		MuscleGroupBiceps, MuscleGroupTriceps, MuscleGroupLegs,
		MuscleGroupGlutes, MuscleGroupAbs, MuscleGroupCardio,
		MuscleGroupFullBody,
	}
}

// Equipment names what an exercise requires.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbells  Equipment = "dumbbells"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentBand       Equipment = "band"
	EquipmentBall       Equipment = "ball"
	EquipmentBench      Equipment = "bench"
	EquipmentNone       Equipment = "none"
)

// Exercise is a catalog entry. RecommendedLevel is the minimum experience the
// exercise is suited for; plans only pick exercises at or below the athlete's
// level.
type Exercise struct {
	ID                   int           `json:"id"`
	Name                 string        `json:"name"`
	MuscleGroup          MuscleGroup   `json:"muscle_group"`
	Equipment            Equipment     `json:"equipment"`
	RecommendedLevel     profile.Level `json:"recommended_level"`
	InstructionsMarkdown string        `json:"instructions_markdown"`
}

// MealTag classifies meals for restriction filtering and search.
type MealTag string

const (
	MealTagVegan       MealTag = "vegan"
	MealTagVegetarian  MealTag = "vegetarian"
	MealTagLowCarb     MealTag = "low_carb"
	MealTagGlutenFree  MealTag = "gluten_free"
	MealTagLactoseFree MealTag = "lactose_free"
	MealTagHighProtein MealTag = "high_protein"
	MealTagLowCalorie  MealTag = "low_calorie"
	MealTagQuick       MealTag = "quick"
	MealTagMealPrep    MealTag = "meal_prep"
)

// MealSlot is a scheduled eating occasion.
type MealSlot string

const (
	SlotBreakfast      MealSlot = "breakfast"
	SlotMorningSnack   MealSlot = "morning_snack"
	SlotLunch          MealSlot = "lunch"
	SlotAfternoonSnack MealSlot = "afternoon_snack"
	SlotDinner         MealSlot = "dinner"
	SlotLateSnack      MealSlot = "late_snack"
)

// Meal is a catalog entry with macros per serving.
type Meal struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Ingredients []string  `json:"ingredients"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	Calories    int       `json:"calories"`
	Tags        []MealTag `json:"tags"`
	PrepNotes   string    `json:"prep_notes"`
}

// HasTag reports whether the meal carries the given tag.
func (m Meal) HasTag(tag MealTag) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
