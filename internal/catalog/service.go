package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saulgabriel7/athlete-core/internal/nutrition"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// Service handles the business logic for the exercise and meal catalogs.
type Service struct {
	exercises    *sqliteExerciseRepository
	meals        *sqliteMealRepository
	logger       *slog.Logger
	openaiAPIKey string
}

// NewService creates a new catalog service.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	return &Service{
		exercises:    newSQLiteExerciseRepository(db),
		meals:        newSQLiteMealRepository(db),
		logger:       logger,
		openaiAPIKey: openaiAPIKey,
	}
}

// ListExercises returns the exercises suited for the given level and below.
func (s *Service) ListExercises(ctx context.Context, maxLevel profile.Level) ([]Exercise, error) {
	exercises, err := s.exercises.List(ctx, maxLevel)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// GetExercise retrieves a specific exercise by ID.
func (s *Service) GetExercise(ctx context.Context, id int) (Exercise, error) {
	exercise, err := s.exercises.Get(ctx, id)
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return exercise, nil
}

// UpdateExercise applies updateFn to the stored exercise.
func (s *Service) UpdateExercise(ctx context.Context, id int, updateFn func(ex *Exercise) (bool, error)) error {
	if err := s.exercises.Update(ctx, id, updateFn); err != nil {
		return fmt.Errorf("update exercise %d: %w", id, err)
	}
	return nil
}

// GenerateExercise creates a new catalog exercise from a name.
//
// In case of errors, it persists a minimal exercise that can be filled in
// later. The returned exercise always has Name and ID set.
func (s *Service) GenerateExercise(ctx context.Context, name string) (Exercise, error) {
	exercise := s.generateExerciseContent(ctx, name)

	persisted, err := s.exercises.Create(ctx, exercise)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}

	return persisted, nil
}

// generateExerciseContent produces exercise content, using AI generation if
// available and falling back to minimal content.
func (s *Service) generateExerciseContent(ctx context.Context, name string) Exercise {
	if s.openaiAPIKey == "" {
		return minimalExercise(name)
	}

	generated, err := newExerciseGenerator(s.openaiAPIKey).Generate(ctx, name)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to generate exercise details",
			slog.Any("error", err), slog.String("name", name))
		return minimalExercise(name)
	}

	return generated
}

// minimalExercise returns a basic exercise with just the essential fields
// populated.
func minimalExercise(name string) Exercise {
	return Exercise{
		Name:                 name,
		MuscleGroup:          MuscleGroupFullBody,
		Equipment:            EquipmentNone,
		RecommendedLevel:     profile.LevelBeginner,
		InstructionsMarkdown: fmt.Sprintf("# %s\n\nNo instructions available yet.", name),
	}
}

// ListMeals returns the whole meal catalog.
func (s *Service) ListMeals(ctx context.Context) ([]Meal, error) {
	meals, err := s.meals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// GetMeal retrieves a specific meal by ID.
func (s *Service) GetMeal(ctx context.Context, id int) (Meal, error) {
	meal, err := s.meals.Get(ctx, id)
	if err != nil {
		return Meal{}, fmt.Errorf("get meal %d: %w", id, err)
	}
	return meal, nil
}

// CreateMeal adds a meal to the catalog. When calories are omitted they are
// derived from the macros.
func (s *Service) CreateMeal(ctx context.Context, meal Meal) (Meal, error) {
	if meal.Calories == 0 {
		meal.Calories = nutrition.CaloriesFromMacros(meal.ProteinG, meal.CarbsG, meal.FatG)
	}

	created, err := s.meals.Create(ctx, meal)
	if err != nil {
		return Meal{}, fmt.Errorf("create meal: %w", err)
	}
	return created, nil
}
