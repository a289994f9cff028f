package main

import (
	"net/http"
	"strconv"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
)

// mealsGET lists the meal catalog.
func (app *application) mealsGET(w http.ResponseWriter, r *http.Request) {
	meals, err := app.catalogService.ListMeals(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, meals)
}

// mealCreateRequest is the payload for adding a meal to the catalog.
type mealCreateRequest struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	ProteinG    float64  `json:"protein_g"`
	CarbsG      float64  `json:"carbs_g"`
	FatG        float64  `json:"fat_g"`
	Calories    int      `json:"calories"`
	Tags        []string `json:"tags"`
	PrepNotes   string   `json:"prep_notes"`
}

// validate reports the first problem with the payload, or an empty string.
func (req mealCreateRequest) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.ProteinG < 0 || req.CarbsG < 0 || req.FatG < 0:
		return "macros must not be negative"
	case req.Calories < 0:
		return "calories must not be negative"
	}
	return ""
}

// mealCreatePOST adds a meal to the catalog. Calories are derived from the
// macros when omitted.
func (app *application) mealCreatePOST(w http.ResponseWriter, r *http.Request) {
	var req mealCreateRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if problem := req.validate(); problem != "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, problem)
		return
	}

	tags := make([]catalog.MealTag, 0, len(req.Tags))
	for _, tag := range req.Tags {
		tags = append(tags, catalog.MealTag(tag))
	}

	created, err := app.catalogService.CreateMeal(r.Context(), catalog.Meal{
		Name:        req.Name,
		Ingredients: req.Ingredients,
		ProteinG:    req.ProteinG,
		CarbsG:      req.CarbsG,
		FatG:        req.FatG,
		Calories:    req.Calories,
		Tags:        tags,
		PrepNotes:   req.PrepNotes,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

// mealGET returns a single catalog meal.
func (app *application) mealGET(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity, "meal id must be an integer")
		return
	}

	meal, err := app.catalogService.GetMeal(r.Context(), id)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, meal)
}
