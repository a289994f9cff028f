package plan_test

import (
	"errors"
	"testing"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/plan"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func newTestServices(t *testing.T) (*plan.Service, *profile.Service) {
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

	profiles := profile.NewService(db, logger)
	catalogSvc := catalog.NewService(db, logger, "")
	return plan.NewService(db, profiles, catalogSvc, logger), profiles
}

func createTestUser(t *testing.T, profiles *profile.Service, level profile.Level) profile.User {
	t.Helper()
	user, err := profiles.Create(t.Context(), profile.User{
		Name:      "Test Athlete",
		Age:       28,
		WeightKg:  75,
		HeightCm:  178,
		Objective: profile.ObjectiveHypertrophy,
		Level:     level,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestService_GenerateWorkoutPlan(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles, profile.LevelBeginner)

	generated, err := svc.GenerateWorkoutPlan(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("generate workout plan: %v", err)
	}
	if generated.ID == "" {
		t.Error("generated plan has no ID")
	}
	if !generated.Active {
		t.Error("generated plan is not active")
	}
	if len(generated.Exercises) == 0 {
		t.Error("generated plan has no exercises")
	}

	active, err := svc.ActiveWorkoutPlan(ctx, user.ID)
	if err != nil {
		t.Fatalf("active workout plan: %v", err)
	}
	if active.ID != generated.ID {
		t.Errorf("active plan ID = %q, want %q", active.ID, generated.ID)
	}
	if len(active.Exercises) != len(generated.Exercises) {
		t.Errorf("active plan has %d exercises, want %d",
			len(active.Exercises), len(generated.Exercises))
	}
}

func TestService_GenerateWorkoutPlan_ReplacesActivePlan(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles, profile.LevelIntermediate)

	first, err := svc.GenerateWorkoutPlan(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("generate first plan: %v", err)
	}
	second, err := svc.GenerateWorkoutPlan(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("generate second plan: %v", err)
	}

	active, err := svc.ActiveWorkoutPlan(ctx, user.ID)
	if err != nil {
		t.Fatalf("active workout plan: %v", err)
	}
	if active.ID == first.ID {
		t.Error("first plan is still active")
	}
	if active.ID != second.ID {
		t.Errorf("active plan ID = %q, want %q", active.ID, second.ID)
	}
}

func TestService_GenerateWorkoutPlan_UnknownUser(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.GenerateWorkoutPlan(t.Context(), "no-such-user", 3)
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("error = %v, want profile.ErrNotFound", err)
	}
}

func TestService_ActiveWorkoutPlan_NoPlan(t *testing.T) {
	svc, profiles := newTestServices(t)
	user := createTestUser(t, profiles, profile.LevelBeginner)

	_, err := svc.ActiveWorkoutPlan(t.Context(), user.ID)
	if !errors.Is(err, plan.ErrNoActivePlan) {
		t.Errorf("error = %v, want plan.ErrNoActivePlan", err)
	}
}

func TestService_GenerateMealPlan(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles, profile.LevelBeginner)

	generated, err := svc.GenerateMealPlan(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("generate meal plan: %v", err)
	}
	if generated.CalorieTarget == 0 {
		t.Error("generated plan has no calorie target")
	}
	// Five slots over five weekdays.
	if len(generated.Meals) != 25 {
		t.Errorf("planned %d meals, want 25", len(generated.Meals))
	}

	active, err := svc.ActiveMealPlan(ctx, user.ID)
	if err != nil {
		t.Fatalf("active meal plan: %v", err)
	}
	if active.ID != generated.ID {
		t.Errorf("active plan ID = %q, want %q", active.ID, generated.ID)
	}
	if active.CalorieTarget != generated.CalorieTarget {
		t.Errorf("active plan calorie target = %d, want %d",
			active.CalorieTarget, generated.CalorieTarget)
	}
}

func TestService_GenerateMealPlan_ReplacesActivePlan(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles, profile.LevelAdvanced)

	if _, err := svc.GenerateMealPlan(ctx, user.ID, 3); err != nil {
		t.Fatalf("generate first plan: %v", err)
	}
	second, err := svc.GenerateMealPlan(ctx, user.ID, 6)
	if err != nil {
		t.Fatalf("generate second plan: %v", err)
	}

	active, err := svc.ActiveMealPlan(ctx, user.ID)
	if err != nil {
		t.Fatalf("active meal plan: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("active plan ID = %q, want %q", active.ID, second.ID)
	}
	// Six slots over five weekdays.
	if len(active.Meals) != 30 {
		t.Errorf("active plan has %d meals, want 30", len(active.Meals))
	}
}
