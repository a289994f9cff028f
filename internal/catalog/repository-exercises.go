package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// sqliteExerciseRepository stores the exercise catalog.
type sqliteExerciseRepository struct {
	db *sqlite.Database
}

func newSQLiteExerciseRepository(db *sqlite.Database) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{db: db}
}

// Get retrieves a single exercise by ID.
func (r *sqliteExerciseRepository) Get(ctx context.Context, id int) (Exercise, error) {
	var (
		exercise    Exercise
		muscleGroup string
		equipment   string
		level       string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, muscle_group, equipment, recommended_level, instructions_markdown
		FROM exercises
		WHERE id = ?`, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&muscleGroup,
		&equipment,
		&level,
		&exercise.InstructionsMarkdown,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", err)
	}

	exercise.MuscleGroup = MuscleGroup(muscleGroup)
	exercise.Equipment = Equipment(equipment)
	exercise.RecommendedLevel = profile.Level(level)

	return exercise, nil
}

// List returns the exercises suitable for the given level, in catalog order.
// The catalog order is the insertion order, which plan generation depends on
// for deterministic picks.
func (r *sqliteExerciseRepository) List(ctx context.Context, maxLevel profile.Level) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, muscle_group, equipment, recommended_level, instructions_markdown
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			exercise    Exercise
			muscleGroup string
			equipment   string
			level       string
		)
		if err = rows.Scan(&exercise.ID, &exercise.Name, &muscleGroup, &equipment,
			&level, &exercise.InstructionsMarkdown); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercise.MuscleGroup = MuscleGroup(muscleGroup)
		exercise.Equipment = Equipment(equipment)
		exercise.RecommendedLevel = profile.Level(level)

		if exercise.RecommendedLevel.Rank() > maxLevel.Rank() {
			continue
		}
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// Create adds a new exercise to the catalog.
func (r *sqliteExerciseRepository) Create(ctx context.Context, ex Exercise) (Exercise, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name, muscle_group, equipment, recommended_level, instructions_markdown)
		VALUES (?, ?, ?, ?, ?)`,
		ex.Name, string(ex.MuscleGroup), string(ex.Equipment),
		string(ex.RecommendedLevel), ex.InstructionsMarkdown)
	if err != nil {
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, fmt.Errorf("get last insert ID: %w", err)
	}
	ex.ID = int(id)

	return ex, nil
}

// Update applies updateFn to the stored exercise and persists the result when
// the function reports a change.
func (r *sqliteExerciseRepository) Update(
	ctx context.Context,
	id int,
	updateFn func(ex *Exercise) (bool, error),
) error {
	exercise, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get exercise for update: %w", err)
	}

	updated, err := updateFn(&exercise)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return nil
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		UPDATE exercises
		SET name = ?, muscle_group = ?, equipment = ?, recommended_level = ?, instructions_markdown = ?
		WHERE id = ?`,
		exercise.Name, string(exercise.MuscleGroup), string(exercise.Equipment),
		string(exercise.RecommendedLevel), exercise.InstructionsMarkdown, id)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}

	return nil
}
