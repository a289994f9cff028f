package main

import (
	"net/http"
	"time"

	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// userRequest is the payload for creating or updating a user.
type userRequest struct {
	Name                string   `json:"name"`
	Age                 int      `json:"age"`
	WeightKg            float64  `json:"weight_kg"`
	HeightCm            float64  `json:"height_cm"`
	Objective           string   `json:"objective"`
	ExperienceLevel     string   `json:"experience_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// validate reports the first problem with the payload, or an empty string.
func (req userRequest) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Age <= 0:
		return "age must be positive"
	case req.WeightKg <= 0:
		return "weight_kg must be positive"
	case req.HeightCm <= 0:
		return "height_cm must be positive"
	case !profile.Objective(req.Objective).Valid():
		return "objective must be one of hypertrophy, fat_loss, conditioning, performance"
	case !profile.Level(req.ExperienceLevel).Valid():
		return "experience_level must be one of beginner, intermediate, advanced"
	}
	return ""
}

type userResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Age                 int       `json:"age"`
	WeightKg            float64   `json:"weight_kg"`
	HeightCm            float64   `json:"height_cm"`
	Objective           string    `json:"objective"`
	ExperienceLevel     string    `json:"experience_level"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toUserResponse(user profile.User) userResponse {
	restrictions := user.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	return userResponse{
		ID:                  user.ID,
		Name:                user.Name,
		Age:                 user.Age,
		WeightKg:            user.WeightKg,
		HeightCm:            user.HeightCm,
		Objective:           string(user.Objective),
		ExperienceLevel:     string(user.Level),
		DietaryRestrictions: restrictions,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

// userCreatePOST registers a new athlete profile.
func (app *application) userCreatePOST(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if problem := req.validate(); problem != "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, problem)
		return
	}

	created, err := app.profileService.Create(r.Context(), profile.User{
		Name:                req.Name,
		Age:                 req.Age,
		WeightKg:            req.WeightKg,
		HeightCm:            req.HeightCm,
		Objective:           profile.Objective(req.Objective),
		Level:               profile.Level(req.ExperienceLevel),
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, toUserResponse(created))
}

// usersGET lists all athlete profiles.
func (app *application) usersGET(w http.ResponseWriter, r *http.Request) {
	users, err := app.profileService.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	app.writeJSON(w, r, http.StatusOK, responses)
}

// userGET returns a single athlete profile.
func (app *application) userGET(w http.ResponseWriter, r *http.Request) {
	user, err := app.profileService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, toUserResponse(user))
}

// userUpdatePUT replaces the mutable fields of an athlete profile.
func (app *application) userUpdatePUT(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if problem := req.validate(); problem != "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, problem)
		return
	}

	id := r.PathValue("id")
	err := app.profileService.Update(r.Context(), id, func(user *profile.User) (bool, error) {
		user.Name = req.Name
		user.Age = req.Age
		user.WeightKg = req.WeightKg
		user.HeightCm = req.HeightCm
		user.Objective = profile.Objective(req.Objective)
		user.Level = profile.Level(req.ExperienceLevel)
		user.DietaryRestrictions = req.DietaryRestrictions
		return true, nil
	})
	if err != nil {
		app.respondError(w, r, err)
		return
	}

	updated, err := app.profileService.Get(r.Context(), id)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, toUserResponse(updated))
}

// userDELETE removes an athlete profile together with their plans and
// sessions.
func (app *application) userDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.profileService.Delete(r.Context(), r.PathValue("id")); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
