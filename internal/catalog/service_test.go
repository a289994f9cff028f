package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func newTestService(t *testing.T) *catalog.Service {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	return catalog.NewService(db, logger, "")
}

func TestService_ListExercises_FiltersByLevel(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	beginner, err := svc.ListExercises(ctx, profile.LevelBeginner)
	if err != nil {
		t.Fatalf("list beginner exercises: %v", err)
	}
	advanced, err := svc.ListExercises(ctx, profile.LevelAdvanced)
	if err != nil {
		t.Fatalf("list advanced exercises: %v", err)
	}

	if len(beginner) == 0 {
		t.Fatal("no beginner exercises in the seeded catalog")
	}
	if len(advanced) <= len(beginner) {
		t.Errorf("advanced pool (%d) not larger than beginner pool (%d)",
			len(advanced), len(beginner))
	}
	for _, exercise := range beginner {
		if exercise.RecommendedLevel != profile.LevelBeginner {
			t.Errorf("exercise %q has level %s in the beginner pool",
				exercise.Name, exercise.RecommendedLevel)
		}
	}
}

func TestService_GetExercise(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	exercise, err := svc.GetExercise(ctx, 1)
	if err != nil {
		t.Fatalf("get exercise: %v", err)
	}
	if exercise.Name == "" || exercise.MuscleGroup == "" {
		t.Errorf("seeded exercise incomplete: %+v", exercise)
	}

	if _, err = svc.GetExercise(ctx, 99999); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, want catalog.ErrNotFound", err)
	}
}

func TestService_GenerateExercise_WithoutAPIKey(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.GenerateExercise(ctx, "Test Landmine Press")
	if err != nil {
		t.Fatalf("generate exercise: %v", err)
	}
	if created.ID == 0 {
		t.Error("generated exercise was not persisted")
	}
	if created.Name != "Test Landmine Press" {
		t.Errorf("Name = %q, want the requested name", created.Name)
	}
	if !strings.Contains(created.InstructionsMarkdown, "Test Landmine Press") {
		t.Errorf("instructions %q do not mention the exercise", created.InstructionsMarkdown)
	}

	stored, err := svc.GetExercise(ctx, created.ID)
	if err != nil {
		t.Fatalf("get generated exercise: %v", err)
	}
	if stored.Name != created.Name {
		t.Errorf("stored name = %q, want %q", stored.Name, created.Name)
	}
}

func TestService_UpdateExercise(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	err := svc.UpdateExercise(ctx, 1, func(exercise *catalog.Exercise) (bool, error) {
		exercise.InstructionsMarkdown = "## Instructions\n\nUpdated."
		return true, nil
	})
	if err != nil {
		t.Fatalf("update exercise: %v", err)
	}

	updated, err := svc.GetExercise(ctx, 1)
	if err != nil {
		t.Fatalf("get exercise: %v", err)
	}
	if updated.InstructionsMarkdown != "## Instructions\n\nUpdated." {
		t.Errorf("instructions = %q, want the update", updated.InstructionsMarkdown)
	}
}

func TestService_ListMeals(t *testing.T) {
	svc := newTestService(t)

	meals, err := svc.ListMeals(t.Context())
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) == 0 {
		t.Fatal("no meals in the seeded catalog")
	}
	for _, meal := range meals {
		if meal.Calories == 0 {
			t.Errorf("meal %q has no calories", meal.Name)
		}
	}
}

func TestService_CreateMeal_DerivesCalories(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.CreateMeal(ctx, catalog.Meal{
		Name:        "Test Omelette",
		Ingredients: []string{"3 eggs", "butter"},
		ProteinG:    18,
		CarbsG:      2,
		FatG:        15,
		Tags:        []catalog.MealTag{catalog.MealTagLowCarb},
	})
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	// 18*4 + 2*4 + 15*9
	if created.Calories != 215 {
		t.Errorf("Calories = %d, want 215", created.Calories)
	}

	stored, err := svc.GetMeal(ctx, created.ID)
	if err != nil {
		t.Fatalf("get meal: %v", err)
	}
	if stored.Calories != 215 {
		t.Errorf("stored calories = %d, want 215", stored.Calories)
	}
	if !stored.HasTag(catalog.MealTagLowCarb) {
		t.Errorf("stored meal lost its tags: %v", stored.Tags)
	}
}

func TestService_GetMeal_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetMeal(t.Context(), 99999)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("error = %v, want catalog.ErrNotFound", err)
	}
}
