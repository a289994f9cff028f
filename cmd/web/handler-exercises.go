package main

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/yuin/goldmark"
)

// exercisesGET lists the exercise catalog. The optional level query parameter
// limits results to exercises suited for that experience level and below.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	maxLevel := profile.LevelAdvanced
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		maxLevel = profile.Level(levelStr)
		if !maxLevel.Valid() {
			app.clientError(w, r, http.StatusUnprocessableEntity, "level must be one of beginner, intermediate, advanced")
			return
		}
	}

	exercises, err := app.catalogService.ListExercises(r.Context(), maxLevel)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

// exerciseGenerateRequest names the exercise to add to the catalog.
type exerciseGenerateRequest struct {
	Name string `json:"name"`
}

// exerciseGeneratePOST adds a new exercise to the catalog, generating its
// details from the name.
func (app *application) exerciseGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req exerciseGenerateRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, "name is required")
		return
	}

	exercise, err := app.catalogService.GenerateExercise(r.Context(), req.Name)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exercise)
}

// exerciseGET returns a single catalog exercise.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity, "exercise id must be an integer")
		return
	}

	exercise, err := app.catalogService.GetExercise(r.Context(), id)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercise)
}

// exerciseInfoGET renders the exercise instructions as HTML.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity, "exercise id must be an integer")
		return
	}

	exercise, err := app.catalogService.GetExercise(r.Context(), id)
	if err != nil {
		app.respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(exercise.InstructionsMarkdown), &buf); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
