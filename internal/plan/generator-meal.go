package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/nutrition"
	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// Calorie bands for picking meals into slots. Breakfast and snacks draw from
// the small band, lunch and dinner from the large band.
const (
	smallMealMinCalories = 150
	smallMealMaxCalories = 400
	largeMealMinCalories = 400
	largeMealMaxCalories = 800
)

// BuildMealPlan assembles a weekly meal plan from the user's profile and the
// meal catalog. Meals conflicting with the user's dietary restrictions are
// excluded. Only weekdays are scheduled, weekends are left free.
func BuildMealPlan(user profile.User, meals []catalog.Meal, mealsPerDay int) MealPlan {
	targets := nutrition.CalculatePlan(user)
	slots := mealSlotsFor(mealsPerDay)

	allowed := filterByRestrictions(meals, user.DietaryRestrictions)
	sort.SliceStable(allowed, func(i, j int) bool {
		return allowed[i].Calories < allowed[j].Calories
	})

	var planned []PlannedMeal
	for weekday := 1; weekday <= 5; weekday++ {
		for i, slot := range slots {
			meal, ok := mealForSlot(allowed, slot)
			if !ok {
				continue
			}
			planned = append(planned, PlannedMeal{
				MealID:   meal.ID,
				Weekday:  weekday,
				Slot:     slot,
				Position: i + 1,
			})
		}
	}

	notes := fmt.Sprintf("Automatically generated. BMR: %dkcal, TDEE: %dkcal. Objective: %s.",
		targets.BMR, targets.TDEE, user.Objective)
	if len(user.DietaryRestrictions) > 0 {
		notes += fmt.Sprintf(" Restrictions considered: %s.", strings.Join(user.DietaryRestrictions, ", "))
	}

	return MealPlan{
		UserID:         user.ID,
		Name:           fmt.Sprintf("Meal Plan - %s", user.Objective),
		Notes:          notes,
		CalorieTarget:  targets.CalorieTarget,
		ProteinTargetG: max(targets.Macros.ProteinG, targets.ProteinTargetG),
		CarbsTargetG:   targets.Macros.CarbsG,
		FatTargetG:     targets.Macros.FatG,
		Meals:          planned,
	}
}

// filterByRestrictions drops meals that conflict with a dietary restriction.
// Restrictions are free-form text, matched by keyword. Unrecognized
// restrictions do not exclude anything.
func filterByRestrictions(meals []catalog.Meal, restrictions []string) []catalog.Meal {
	if len(restrictions) == 0 {
		return append([]catalog.Meal(nil), meals...)
	}

	allowed := make([]catalog.Meal, 0, len(meals))
	for _, meal := range meals {
		if mealAllowed(meal, restrictions) {
			allowed = append(allowed, meal)
		}
	}
	return allowed
}

func mealAllowed(meal catalog.Meal, restrictions []string) bool {
	for _, restriction := range restrictions {
		keyword := strings.ToLower(restriction)
		switch {
		case strings.Contains(keyword, "gluten"):
			if !meal.HasTag(catalog.MealTagGlutenFree) {
				return false
			}
		case strings.Contains(keyword, "lactose"):
			if !meal.HasTag(catalog.MealTagLactoseFree) {
				return false
			}
		case strings.Contains(keyword, "vegan"):
			if !meal.HasTag(catalog.MealTagVegan) && !meal.HasTag(catalog.MealTagVegetarian) {
				return false
			}
		}
	}
	return true
}

// mealForSlot picks the first meal in the slot's calorie band. Meals must be
// sorted by ascending calories. When no meal hits the band, small slots fall
// back to the lightest meal and large slots to the heaviest.
func mealForSlot(sorted []catalog.Meal, slot catalog.MealSlot) (catalog.Meal, bool) {
	if len(sorted) == 0 {
		return catalog.Meal{}, false
	}

	minCal, maxCal := largeMealMinCalories, largeMealMaxCalories
	fallback := sorted[len(sorted)-1]
	if slot != catalog.SlotLunch && slot != catalog.SlotDinner {
		minCal, maxCal = smallMealMinCalories, smallMealMaxCalories
		fallback = sorted[0]
	}

	for _, meal := range sorted {
		if meal.Calories >= minCal && meal.Calories <= maxCal {
			return meal, true
		}
	}
	return fallback, true
}
