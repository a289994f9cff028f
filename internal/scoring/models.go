// Package scoring records training sessions, rates how well they went, and
// turns session history into recommendations.
package scoring

import (
	"time"

	"github.com/saulgabriel7/athlete-core/internal/errors"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.NewSentinel("session not found")

// ExerciseResult is what the athlete actually performed for one exercise of
// a session. Reps and LoadsKg hold one entry per set.
type ExerciseResult struct {
	ExerciseID    int       `json:"exercise_id"`
	Position      int       `json:"position"`
	SetsPerformed int       `json:"sets_performed"`
	Reps          []int     `json:"reps"`
	LoadsKg       []float64 `json:"loads_kg"`
	Notes         string    `json:"notes,omitempty"`
}

// Session is a logged training session. DurationMinutes is nil when the
// athlete did not track time. Score is assigned once when the session is
// logged and never recomputed.
type Session struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Date            time.Time        `json:"date"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Score           *int             `json:"score,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Exercises       []ExerciseResult `json:"exercises"`
}
