package main

import (
	"net/http"

	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	standard := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.timeout(next))))
	}
	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		mux.Handle(pattern, standard(handlerFunc))
	}

	handle("GET /api/healthy", app.healthy)

	handle("POST /api/users", app.userCreatePOST)
	handle("GET /api/users", app.usersGET)
	handle("GET /api/users/{id}", app.userGET)
	handle("PUT /api/users/{id}", app.userUpdatePUT)
	handle("DELETE /api/users/{id}", app.userDELETE)

	handle("GET /api/users/{id}/nutrition", app.nutritionGET)

	handle("POST /api/users/{id}/workout-plan", app.workoutPlanGeneratePOST)
	handle("GET /api/users/{id}/workout-plan", app.workoutPlanGET)
	handle("POST /api/users/{id}/meal-plan", app.mealPlanGeneratePOST)
	handle("GET /api/users/{id}/meal-plan", app.mealPlanGET)
	handle("GET /api/users/{id}/meal-plan/totals", app.mealPlanTotalsGET)

	handle("POST /api/users/{id}/sessions", app.sessionLogPOST)
	handle("GET /api/users/{id}/sessions", app.sessionsGET)
	handle("PATCH /api/sessions/{id}", app.sessionUpdatePATCH)

	handle("GET /api/users/{id}/recommendations", app.recommendationsGET)

	handle("GET /api/exercises", app.exercisesGET)
	handle("POST /api/exercises", app.exerciseGeneratePOST)
	handle("GET /api/exercises/{id}", app.exerciseGET)
	handle("GET /api/exercises/{id}/info", app.exerciseInfoGET)

	handle("GET /api/meals", app.mealsGET)
	handle("POST /api/meals", app.mealCreatePOST)
	handle("GET /api/meals/{id}", app.mealGET)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: app.corsOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	})
	return corsHandler.Handler(mux)
}
