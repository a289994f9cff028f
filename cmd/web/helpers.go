package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	internalerrors "github.com/saulgabriel7/athlete-core/internal/errors"
	"github.com/saulgabriel7/athlete-core/internal/plan"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/scoring"
)

const maxRequestBodyBytes = 1 << 20

// writeJSON encodes data as the response body with the given status code.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("marshal response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	_, _ = w.Write([]byte("\n"))
}

// readJSON decodes the request body into dst, rejecting oversized bodies and
// unknown fields.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// serverError logs the error and responds with a generic 500.
func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", internalerrors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// clientError responds with the given status and message.
func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, errorResponse{Error: message})
}

// respondError maps domain errors to HTTP responses. Unknown errors become a
// 500.
func (app *application) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, catalog.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "catalog entry not found")
	case errors.Is(err, scoring.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "session not found")
	case errors.Is(err, plan.ErrNoActivePlan):
		app.clientError(w, r, http.StatusNotFound, "no active plan")
	default:
		app.serverError(w, r, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
