package plan

import (
	"fmt"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
)

// BuildWorkoutPlan assembles a weekly workout plan from the user's profile
// and the exercise pool. The pool must already be filtered to the user's
// level and is consumed in order, so the same pool always produces the same
// plan. Training days run Monday to Friday.
func BuildWorkoutPlan(user profile.User, pool []catalog.Exercise, daysPerWeek int) WorkoutPlan {
	days := clampDays(daysPerWeek)
	split := daySplitFor(user.Objective, days)
	rx := prescriptionFor(user.Objective, user.Level)
	perGroup := exercisesPerGroup(user.Level)

	byGroup := make(map[catalog.MuscleGroup][]catalog.Exercise)
	for _, exercise := range pool {
		byGroup[exercise.MuscleGroup] = append(byGroup[exercise.MuscleGroup], exercise)
	}

	var exercises []PlannedExercise
	for day, groups := range split {
		weekday := day + 1
		position := 1
		for _, group := range groups {
			candidates := byGroup[group]
			for _, exercise := range candidates[:min(perGroup, len(candidates))] {
				exercises = append(exercises, PlannedExercise{
					ExerciseID:  exercise.ID,
					Weekday:     weekday,
					Position:    position,
					Sets:        rx.Sets,
					RepRange:    rx.RepRange,
					RestSeconds: rx.RestSeconds,
				})
				position++
			}
		}
	}

	return WorkoutPlan{
		UserID: user.ID,
		Name:   fmt.Sprintf("%s Plan - %dx per week", objectiveTitle(user.Objective), days),
		Notes: fmt.Sprintf(
			"Automatically generated for the %s objective. Level: %s. "+
				"Rest 1-2 days between sessions hitting the same muscle group.",
			user.Objective, user.Level),
		Exercises: exercises,
	}
}
