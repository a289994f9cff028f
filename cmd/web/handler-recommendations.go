package main

import "net/http"

type recommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

// recommendationsGET returns training advice derived from the user's recent
// session history.
func (app *application) recommendationsGET(w http.ResponseWriter, r *http.Request) {
	recommendations, err := app.scoringService.Recommend(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, recommendationsResponse{Recommendations: recommendations})
}
