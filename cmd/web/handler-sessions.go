package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/saulgabriel7/athlete-core/internal/scoring"
)

// sessionExerciseRequest is one performed exercise in a logged session.
type sessionExerciseRequest struct {
	ExerciseID    int       `json:"exercise_id"`
	SetsPerformed int       `json:"sets_performed"`
	Reps          []int     `json:"reps"`
	LoadsKg       []float64 `json:"loads_kg"`
	Notes         string    `json:"notes"`
}

// sessionRequest is the payload for logging a training session.
type sessionRequest struct {
	Date            string                   `json:"date"`
	DurationMinutes *int                     `json:"duration_minutes"`
	Notes           string                   `json:"notes"`
	Exercises       []sessionExerciseRequest `json:"exercises"`
}

// sessionLogPOST records a training session and scores it. The session date
// defaults to today.
func (app *application) sessionLogPOST(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		var err error
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			app.clientError(w, r, http.StatusUnprocessableEntity, "date must be formatted as 2006-01-02")
			return
		}
	}
	for _, exercise := range req.Exercises {
		if exercise.ExerciseID <= 0 {
			app.clientError(w, r, http.StatusUnprocessableEntity, "exercise_id must be positive")
			return
		}
		if exercise.SetsPerformed < 0 {
			app.clientError(w, r, http.StatusUnprocessableEntity, "sets_performed must not be negative")
			return
		}
	}

	session := scoring.Session{
		UserID:          r.PathValue("id"),
		Date:            date,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	for i, exercise := range req.Exercises {
		session.Exercises = append(session.Exercises, scoring.ExerciseResult{
			ExerciseID:    exercise.ExerciseID,
			Position:      i + 1,
			SetsPerformed: exercise.SetsPerformed,
			Reps:          exercise.Reps,
			LoadsKg:       exercise.LoadsKg,
			Notes:         exercise.Notes,
		})
	}

	logged, err := app.scoringService.LogSession(r.Context(), session)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, logged)
}

// sessionsGET lists the user's sessions newest first. The optional limit
// query parameter caps the result.
func (app *application) sessionsGET(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil {
			app.clientError(w, r, http.StatusUnprocessableEntity, "limit must be an integer")
			return
		}
	}

	sessions, err := app.scoringService.ListSessions(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, sessions)
}

// sessionUpdateRequest carries the fields that can change after logging.
type sessionUpdateRequest struct {
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

// sessionUpdatePATCH updates duration and notes of a logged session. The
// score is never recomputed.
func (app *application) sessionUpdatePATCH(w http.ResponseWriter, r *http.Request) {
	var req sessionUpdateRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	err := app.scoringService.UpdateSession(r.Context(), id, func(session *scoring.Session) (bool, error) {
		updated := false
		if req.DurationMinutes != nil {
			session.DurationMinutes = req.DurationMinutes
			updated = true
		}
		if req.Notes != nil {
			session.Notes = *req.Notes
			updated = true
		}
		return updated, nil
	})
	if err != nil {
		app.respondError(w, r, err)
		return
	}

	updated, err := app.scoringService.GetSession(r.Context(), id)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, updated)
}
