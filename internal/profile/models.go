// Package profile holds athlete profiles and the training taxonomy shared by
// the planning and scoring packages.
package profile

import (
	"time"

	"github.com/saulgabriel7/athlete-core/internal/errors"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.NewSentinel("user not found")

// Objective is the training goal driving calorie targets, macro splits, and
// workout templates.
type Objective string

const (
	ObjectiveHypertrophy  Objective = "hypertrophy"
	ObjectiveFatLoss      Objective = "fat_loss"
	ObjectiveConditioning Objective = "conditioning"
	ObjectivePerformance  Objective = "performance"
)

// Objectives lists all valid objectives.
func Objectives() []Objective {
	return []Objective{ObjectiveHypertrophy, ObjectiveFatLoss, ObjectiveConditioning, ObjectivePerformance}
}

// Valid reports whether o is a known objective.
func (o Objective) Valid() bool {
	switch o {
	case ObjectiveHypertrophy, ObjectiveFatLoss, ObjectiveConditioning, ObjectivePerformance:
		return true
	}
	return false
}

// Level is the athlete's experience level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Rank orders levels so that catalog entries can be filtered with a simple
// comparison. Unknown levels rank highest so they are never recommended to
// anyone.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	}
	return 4
}

// User is an athlete profile. Dietary restrictions are free-form text entries
// such as "gluten" or "vegan".
type User struct {
	ID                  string
	Name                string
	Age                 int
	WeightKg            float64
	HeightCm            float64
	Objective           Objective
	Level               Level
	DietaryRestrictions []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
