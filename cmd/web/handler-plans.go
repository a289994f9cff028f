package main

import (
	"net/http"
	"strconv"

	"github.com/saulgabriel7/athlete-core/internal/nutrition"
)

// workoutPlanRequest configures workout plan generation.
type workoutPlanRequest struct {
	DaysPerWeek int `json:"days_per_week"`
}

// workoutPlanGeneratePOST generates a workout plan from the user's profile
// and makes it the active one. Days outside 3-5 are clamped.
func (app *application) workoutPlanGeneratePOST(w http.ResponseWriter, r *http.Request) {
	req := workoutPlanRequest{DaysPerWeek: 4}
	if r.ContentLength > 0 {
		if err := app.readJSON(w, r, &req); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	generated, err := app.planService.GenerateWorkoutPlan(r.Context(), r.PathValue("id"), req.DaysPerWeek)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, generated)
}

// workoutPlanGET returns the user's active workout plan.
func (app *application) workoutPlanGET(w http.ResponseWriter, r *http.Request) {
	active, err := app.planService.ActiveWorkoutPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, active)
}

// mealPlanRequest configures meal plan generation.
type mealPlanRequest struct {
	MealsPerDay int `json:"meals_per_day"`
}

// mealPlanGeneratePOST generates a meal plan from the user's profile and
// makes it the active one. Meal counts outside 3-6 are clamped.
func (app *application) mealPlanGeneratePOST(w http.ResponseWriter, r *http.Request) {
	req := mealPlanRequest{MealsPerDay: 5}
	if r.ContentLength > 0 {
		if err := app.readJSON(w, r, &req); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	generated, err := app.planService.GenerateMealPlan(r.Context(), r.PathValue("id"), req.MealsPerDay)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, generated)
}

// mealPlanGET returns the user's active meal plan.
func (app *application) mealPlanGET(w http.ResponseWriter, r *http.Request) {
	active, err := app.planService.ActiveMealPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, active)
}

// mealPlanTotalsResponse compares a weekday's planned intake to the plan
// targets.
type mealPlanTotalsResponse struct {
	Weekday         int              `json:"weekday"`
	Planned         nutrition.Macros `json:"planned"`
	Target          nutrition.Macros `json:"target"`
	PercentOfTarget nutrition.Macros `json:"percent_of_target"`
}

// mealPlanTotalsGET sums the macros scheduled for one weekday of the active
// meal plan. The weekday query parameter defaults to Monday.
func (app *application) mealPlanTotalsGET(w http.ResponseWriter, r *http.Request) {
	weekday := 1
	if weekdayStr := r.URL.Query().Get("weekday"); weekdayStr != "" {
		var err error
		if weekday, err = strconv.Atoi(weekdayStr); err != nil || weekday < 1 || weekday > 5 {
			app.clientError(w, r, http.StatusUnprocessableEntity, "weekday must be an integer between 1 and 5")
			return
		}
	}

	active, err := app.planService.ActiveMealPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}

	var dayMacros []nutrition.Macros
	for _, planned := range active.Meals {
		if planned.Weekday != weekday {
			continue
		}
		meal, mealErr := app.catalogService.GetMeal(r.Context(), planned.MealID)
		if mealErr != nil {
			app.respondError(w, r, mealErr)
			return
		}
		dayMacros = append(dayMacros, nutrition.Macros{
			ProteinG: int(meal.ProteinG),
			CarbsG:   int(meal.CarbsG),
			FatG:     int(meal.FatG),
			Calories: meal.Calories,
		})
	}

	planned := nutrition.SumMacros(dayMacros)
	target := nutrition.Macros{
		ProteinG: active.ProteinTargetG,
		CarbsG:   active.CarbsTargetG,
		FatG:     active.FatTargetG,
		Calories: active.CalorieTarget,
	}
	app.writeJSON(w, r, http.StatusOK, mealPlanTotalsResponse{
		Weekday:         weekday,
		Planned:         planned,
		Target:          target,
		PercentOfTarget: nutrition.MacroPercentages(planned, target),
	})
}
