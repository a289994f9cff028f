// Package plan generates and stores workout and meal plans tailored to an
// athlete's profile.
package plan

import (
	"time"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/errors"
)

// ErrNoActivePlan is returned when a user has no active plan of the requested
// kind.
var ErrNoActivePlan = errors.NewSentinel("no active plan")

// PlannedExercise is a single prescription inside a workout plan. Weekday is
// ISO numbering, Monday is 1. Position orders exercises within a day.
type PlannedExercise struct {
	ExerciseID  int    `json:"exercise_id"`
	Weekday     int    `json:"weekday"`
	Position    int    `json:"position"`
	Sets        int    `json:"sets"`
	RepRange    string `json:"rep_range"`
	RestSeconds int    `json:"rest_seconds"`
	Notes       string `json:"notes,omitempty"`
}

// WorkoutPlan is a weekly training schedule. At most one plan per user is
// active at a time.
type WorkoutPlan struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	Exercises []PlannedExercise `json:"exercises"`
}

// PlannedMeal schedules a catalog meal into a slot of a weekday.
type PlannedMeal struct {
	MealID   int              `json:"meal_id"`
	Weekday  int              `json:"weekday"`
	Slot     catalog.MealSlot `json:"slot"`
	Position int              `json:"position"`
}

// MealPlan is a weekly eating schedule with the daily targets it was built
// for. At most one plan per user is active at a time.
type MealPlan struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Name           string        `json:"name"`
	Notes          string        `json:"notes"`
	CalorieTarget  int           `json:"calorie_target"`
	ProteinTargetG int           `json:"protein_target_g"`
	CarbsTargetG   int           `json:"carbs_target_g"`
	FatTargetG     int           `json:"fat_target_g"`
	Active         bool          `json:"active"`
	CreatedAt      time.Time     `json:"created_at"`
	Meals          []PlannedMeal `json:"meals"`
}
