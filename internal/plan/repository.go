package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository stores workout and meal plans.
type sqliteRepository struct {
	db *sqlite.Database
}

func newSQLiteRepository(db *sqlite.Database) *sqliteRepository {
	return &sqliteRepository{db: db}
}

// CreateWorkoutPlan persists a new workout plan as the user's active one. Any
// previously active plan is deactivated in the same transaction.
func (r *sqliteRepository) CreateWorkoutPlan(ctx context.Context, plan WorkoutPlan) (_ WorkoutPlan, err error) {
	plan.ID = uuid.NewString()
	plan.Active = true
	plan.CreatedAt = time.Now().UTC()

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		UPDATE workout_plans SET active = 0 WHERE user_id = ? AND active = 1`,
		plan.UserID); err != nil {
		return WorkoutPlan{}, fmt.Errorf("deactivate previous workout plans: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO workout_plans (id, user_id, name, notes, active, created_at)
		VALUES (?, ?, ?, ?, 1, ?)`,
		plan.ID, plan.UserID, plan.Name, plan.Notes,
		plan.CreatedAt.Format(timestampFormat)); err != nil {
		return WorkoutPlan{}, fmt.Errorf("insert workout plan: %w", err)
	}

	for _, exercise := range plan.Exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO workout_plan_exercises (plan_id, exercise_id, weekday, position, sets, rep_range, rest_seconds, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			plan.ID, exercise.ExerciseID, exercise.Weekday, exercise.Position,
			exercise.Sets, exercise.RepRange, exercise.RestSeconds, exercise.Notes); err != nil {
			return WorkoutPlan{}, fmt.Errorf("insert workout plan exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return WorkoutPlan{}, fmt.Errorf("commit: %w", err)
	}

	return plan, nil
}

// ActiveWorkoutPlan loads the user's active workout plan with its exercises.
func (r *sqliteRepository) ActiveWorkoutPlan(ctx context.Context, userID string) (WorkoutPlan, error) {
	var (
		plan         WorkoutPlan
		createdAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, name, notes, created_at
		FROM workout_plans
		WHERE user_id = ? AND active = 1`, userID).Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.Notes, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return WorkoutPlan{}, ErrNoActivePlan
	}
	if err != nil {
		return WorkoutPlan{}, fmt.Errorf("query workout plan: %w", err)
	}
	plan.Active = true
	if plan.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return WorkoutPlan{}, fmt.Errorf("parse created_at: %w", err)
	}

	if plan.Exercises, err = r.workoutPlanExercises(ctx, plan.ID); err != nil {
		return WorkoutPlan{}, err
	}

	return plan, nil
}

func (r *sqliteRepository) workoutPlanExercises(ctx context.Context, planID string) (_ []PlannedExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, weekday, position, sets, rep_range, rest_seconds, notes
		FROM workout_plan_exercises
		WHERE plan_id = ?
		ORDER BY weekday, position`, planID)
	if err != nil {
		return nil, fmt.Errorf("query workout plan exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []PlannedExercise
	for rows.Next() {
		var exercise PlannedExercise
		if err = rows.Scan(&exercise.ExerciseID, &exercise.Weekday, &exercise.Position,
			&exercise.Sets, &exercise.RepRange, &exercise.RestSeconds, &exercise.Notes); err != nil {
			return nil, fmt.Errorf("scan workout plan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// CreateMealPlan persists a new meal plan as the user's active one. Any
// previously active plan is deactivated in the same transaction.
func (r *sqliteRepository) CreateMealPlan(ctx context.Context, plan MealPlan) (_ MealPlan, err error) {
	plan.ID = uuid.NewString()
	plan.Active = true
	plan.CreatedAt = time.Now().UTC()

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return MealPlan{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		UPDATE meal_plans SET active = 0 WHERE user_id = ? AND active = 1`,
		plan.UserID); err != nil {
		return MealPlan{}, fmt.Errorf("deactivate previous meal plans: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO meal_plans (id, user_id, name, notes, calorie_target, protein_target_g, carbs_target_g, fat_target_g, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		plan.ID, plan.UserID, plan.Name, plan.Notes, plan.CalorieTarget,
		plan.ProteinTargetG, plan.CarbsTargetG, plan.FatTargetG,
		plan.CreatedAt.Format(timestampFormat)); err != nil {
		return MealPlan{}, fmt.Errorf("insert meal plan: %w", err)
	}

	for _, meal := range plan.Meals {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO meal_plan_meals (plan_id, meal_id, weekday, slot, position)
			VALUES (?, ?, ?, ?, ?)`,
			plan.ID, meal.MealID, meal.Weekday, string(meal.Slot), meal.Position); err != nil {
			return MealPlan{}, fmt.Errorf("insert meal plan meal: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return MealPlan{}, fmt.Errorf("commit: %w", err)
	}

	return plan, nil
}

// ActiveMealPlan loads the user's active meal plan with its scheduled meals.
func (r *sqliteRepository) ActiveMealPlan(ctx context.Context, userID string) (MealPlan, error) {
	var (
		plan         MealPlan
		createdAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, name, notes, calorie_target, protein_target_g, carbs_target_g, fat_target_g, created_at
		FROM meal_plans
		WHERE user_id = ? AND active = 1`, userID).Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.Notes, &plan.CalorieTarget,
		&plan.ProteinTargetG, &plan.CarbsTargetG, &plan.FatTargetG, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return MealPlan{}, ErrNoActivePlan
	}
	if err != nil {
		return MealPlan{}, fmt.Errorf("query meal plan: %w", err)
	}
	plan.Active = true
	if plan.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return MealPlan{}, fmt.Errorf("parse created_at: %w", err)
	}

	if plan.Meals, err = r.mealPlanMeals(ctx, plan.ID); err != nil {
		return MealPlan{}, err
	}

	return plan, nil
}

func (r *sqliteRepository) mealPlanMeals(ctx context.Context, planID string) (_ []PlannedMeal, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT meal_id, weekday, slot, position
		FROM meal_plan_meals
		WHERE plan_id = ?
		ORDER BY weekday, position`, planID)
	if err != nil {
		return nil, fmt.Errorf("query meal plan meals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var meals []PlannedMeal
	for rows.Next() {
		var (
			meal PlannedMeal
			slot string
		)
		if err = rows.Scan(&meal.MealID, &meal.Weekday, &slot, &meal.Position); err != nil {
			return nil, fmt.Errorf("scan meal plan meal: %w", err)
		}
		meal.Slot = catalog.MealSlot(slot)
		meals = append(meals, meal)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return meals, nil
}
