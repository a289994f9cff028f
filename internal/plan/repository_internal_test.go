package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func TestRepository_WorkoutPlanExerciseNotesRoundTrip(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	user, err := profile.NewService(db, logger).Create(ctx, profile.User{
		Name:      "Test Athlete",
		Age:       28,
		WeightKg:  75,
		HeightCm:  178,
		Objective: profile.ObjectiveHypertrophy,
		Level:     profile.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	repo := newSQLiteRepository(db)
	created, err := repo.CreateWorkoutPlan(ctx, WorkoutPlan{
		UserID: user.ID,
		Name:   "Hypertrophy Plan - 3x per week",
		Exercises: []PlannedExercise{{
			ExerciseID:  1,
			Weekday:     1,
			Position:    1,
			Sets:        3,
			RepRange:    "10-12",
			RestSeconds: 90,
			Notes:       "focus on slow negatives",
		}},
	})
	if err != nil {
		t.Fatalf("create workout plan: %v", err)
	}

	active, err := repo.ActiveWorkoutPlan(ctx, user.ID)
	if err != nil {
		t.Fatalf("active workout plan: %v", err)
	}
	if diff := cmp.Diff(created.Exercises, active.Exercises); diff != "" {
		t.Errorf("exercises mismatch (-created +active):\n%s", diff)
	}
}
