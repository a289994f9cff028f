package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// profileReader provides the user profiles plans are generated for.
type profileReader interface {
	Get(ctx context.Context, id string) (profile.User, error)
}

// catalogReader provides the exercise and meal pools plans draw from.
type catalogReader interface {
	ListExercises(ctx context.Context, maxLevel profile.Level) ([]catalog.Exercise, error)
	ListMeals(ctx context.Context) ([]catalog.Meal, error)
}

// Service generates plans and manages the active plan per user.
type Service struct {
	repo     *sqliteRepository
	profiles profileReader
	catalog  catalogReader
	logger   *slog.Logger
}

// NewService creates a new plan service.
func NewService(db *sqlite.Database, profiles profileReader, catalog catalogReader, logger *slog.Logger) *Service {
	return &Service{
		repo:     newSQLiteRepository(db),
		profiles: profiles,
		catalog:  catalog,
		logger:   logger,
	}
}

// GenerateWorkoutPlan builds a workout plan for the user and makes it their
// active plan, replacing any previous one.
func (s *Service) GenerateWorkoutPlan(ctx context.Context, userID string, daysPerWeek int) (WorkoutPlan, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("get user: %w", err)
	}

	pool, err := s.catalog.ListExercises(ctx, user.Level)
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("list exercises: %w", err)
	}

	plan, err := s.repo.CreateWorkoutPlan(ctx, BuildWorkoutPlan(user, pool, daysPerWeek))
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("create workout plan: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated workout plan",
		slog.String("user_id", userID),
		slog.String("plan_id", plan.ID),
		slog.Int("exercises", len(plan.Exercises)))

	return plan, nil
}

// ActiveWorkoutPlan returns the user's active workout plan.
func (s *Service) ActiveWorkoutPlan(ctx context.Context, userID string) (WorkoutPlan, error) {
	plan, err := s.repo.ActiveWorkoutPlan(ctx, userID)
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("active workout plan: %w", err)
	}
	return plan, nil
}

// GenerateMealPlan builds a meal plan for the user and makes it their active
// plan, replacing any previous one.
func (s *Service) GenerateMealPlan(ctx context.Context, userID string, mealsPerDay int) (MealPlan, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return MealPlan{}, fmt.Errorf("get user: %w", err)
	}

	meals, err := s.catalog.ListMeals(ctx)
	if err != nil {
		return MealPlan{}, fmt.Errorf("list meals: %w", err)
	}

	plan, err := s.repo.CreateMealPlan(ctx, BuildMealPlan(user, meals, mealsPerDay))
	if err != nil {
		return MealPlan{}, fmt.Errorf("create meal plan: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated meal plan",
		slog.String("user_id", userID),
		slog.String("plan_id", plan.ID),
		slog.Int("calorie_target", plan.CalorieTarget))

	return plan, nil
}

// ActiveMealPlan returns the user's active meal plan.
func (s *Service) ActiveMealPlan(ctx context.Context, userID string) (MealPlan, error) {
	plan, err := s.repo.ActiveMealPlan(ctx, userID)
	if err != nil {
		return MealPlan{}, fmt.Errorf("active meal plan: %w", err)
	}
	return plan, nil
}
